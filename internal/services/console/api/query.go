package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Listing defaults the backend also applies.
const (
	DefaultPage       = 1
	DefaultPageSize   = 10
	DefaultVolumeDays = 7
)

// Page selects one page of a paged listing. Zero values use the defaults.
type Page struct {
	Page     int
	PageSize int
}

func (p Page) values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(orDefault(p.Page, DefaultPage)))
	values.Set("pageSize", strconv.Itoa(orDefault(p.PageSize, DefaultPageSize)))
	return values
}

// TopicQuery filters a topic listing.
type TopicQuery struct {
	Page
	Keyword string
}

func (q TopicQuery) values() url.Values {
	values := q.Page.values()
	values.Set("keyword", q.Keyword)
	return values
}

// GroupQuery filters a consumer group listing.
type GroupQuery struct {
	Page
	Keyword string
	Topic   string
}

func (q GroupQuery) values() url.Values {
	values := q.Page.values()
	values.Set("keyword", q.Keyword)
	values.Set("topic", q.Topic)
	return values
}

// MessageQuery filters a message search. Nil and zero fields are omitted so
// the backend defaults apply (limit 100, pageSize 20, sort by timestamp desc,
// scan desc, timeout 1000ms, 10 retries).
type MessageQuery struct {
	Partitions    []int
	StartTime     *int64
	EndTime       *int64
	StartOffset   *int64
	EndOffset     *int64
	Key           string
	Keyword       string
	Limit         int
	Page          int
	PageSize      int
	SortField     string
	SortOrder     string
	ScanDirection string
	Timeout       int
	RetryCount    int
}

func (q MessageQuery) values() url.Values {
	values := url.Values{}
	for _, partition := range lo.Uniq(q.Partitions) {
		values.Add("partitions", strconv.Itoa(partition))
	}
	setInt64(values, "startTime", q.StartTime)
	setInt64(values, "endTime", q.EndTime)
	setInt64(values, "startOffset", q.StartOffset)
	setInt64(values, "endOffset", q.EndOffset)
	setString(values, "key", q.Key)
	setString(values, "keyword", q.Keyword)
	setInt(values, "limit", q.Limit)
	setInt(values, "page", q.Page)
	setInt(values, "pageSize", q.PageSize)
	setString(values, "sortField", q.SortField)
	setString(values, "sortOrder", q.SortOrder)
	setString(values, "scanDirection", q.ScanDirection)
	setInt(values, "timeout", q.Timeout)
	setInt(values, "retryCount", q.RetryCount)
	return values
}

// BackfillRequest selects the topics whose volume history is recomputed.
// All=true lets the backend backfill every topic in the cluster.
type BackfillRequest struct {
	Topics []string
	Days   int
	All    bool
}

func (r BackfillRequest) values() url.Values {
	values := topicsValues(r.Topics)
	values.Set("days", strconv.Itoa(orDefault(r.Days, DefaultVolumeDays)))
	values.Set("all", strconv.FormatBool(r.All))
	return values
}

// topicsValues repeats the topics key without brackets: topics=a&topics=b.
func topicsValues(topics []string) url.Values {
	values := url.Values{}
	cleaned := lo.Uniq(lo.Compact(lo.Map(topics, func(topic string, _ int) string {
		return strings.TrimSpace(topic)
	})))
	for _, topic := range cleaned {
		values.Add("topics", topic)
	}
	return values
}

func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func setInt(values url.Values, key string, value int) {
	if value > 0 {
		values.Set(key, strconv.Itoa(value))
	}
}

func setInt64(values url.Values, key string, value *int64) {
	if value != nil {
		values.Set(key, strconv.FormatInt(*value, 10))
	}
}

func setString(values url.Values, key, value string) {
	if strings.TrimSpace(value) != "" {
		values.Set(key, value)
	}
}
