// Package templates renders the console's HTML pages as templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	humanize "github.com/dustin/go-humanize"
	"github.com/louisbranch/kafkaview/internal/platform/i18n"
	"github.com/louisbranch/kafkaview/internal/services/console/api"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
)

// Layout wraps body in the shared page shell with the flash messages on top.
func Layout(loc *i18n.Labeler, title string, flashes []string, loggedIn bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		lang := "zh-CN"
		if loc.Locale() == i18n.English {
			lang = "en"
		}
		p.raw(`<!DOCTYPE html><html lang="`)
		p.text(lang)
		p.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(title)
		p.raw(" | ")
		p.text(loc.Message("console.title"))
		p.raw(`</title></head><body><header><a href="`)
		p.attr(routepath.Root)
		p.raw(`">`)
		p.text(loc.Message("console.title"))
		p.raw(`</a>`)
		if loggedIn {
			p.raw(`<form method="post" action="`)
			p.attr(routepath.Logout)
			p.raw(`"><button type="submit">`)
			p.text(loc.Message("console.logout"))
			p.raw(`</button></form>`)
		}
		p.raw(`</header>`)
		for _, flash := range flashes {
			p.raw(`<div class="toast toast-error" role="alert">`)
			p.text(flash)
			p.raw(`</div>`)
		}
		p.raw(`<main>`)
		if p.err != nil {
			return p.err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		p.raw(`</main></body></html>`)
		return p.err
	})
}

// LoginView is the data behind the login form.
type LoginView struct {
	Username string
	Error    string
}

// LoginPage renders the login form.
func LoginPage(loc *i18n.Labeler, view LoginView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.raw(`<h1>`)
		p.text(loc.Message("console.login.title"))
		p.raw(`</h1>`)
		if view.Error != "" {
			p.raw(`<p class="error" role="alert">`)
			p.text(view.Error)
			p.raw(`</p>`)
		}
		p.raw(`<form method="post" action="`)
		p.attr(routepath.Login)
		p.raw(`"><label>`)
		p.text(loc.Message("console.login.username"))
		p.raw(` <input name="username" autocomplete="username" required value="`)
		p.attr(view.Username)
		p.raw(`"></label><label>`)
		p.text(loc.Message("console.login.password"))
		p.raw(` <input type="password" name="password" autocomplete="current-password" required></label><button type="submit">`)
		p.text(loc.Message("console.login.submit"))
		p.raw(`</button></form>`)
		return p.err
	})
}

// ClustersPage renders the cluster table of the home page.
func ClustersPage(loc *i18n.Labeler, clusters []api.ClusterInfo) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.raw(`<h1>`)
		p.text(loc.Message("console.clusters.title"))
		p.raw(`</h1>`)
		if len(clusters) == 0 {
			p.raw(`<p class="empty">`)
			p.text(loc.Message("console.clusters.empty"))
			p.raw(`</p>`)
			return p.err
		}
		p.raw(`<table><thead><tr>`)
		for _, key := range []string{"name", "bootstrapServers", "version", "protocol", "actions"} {
			p.raw(`<th>`)
			p.text(loc.Label(key))
			p.raw(`</th>`)
		}
		p.raw(`</tr></thead><tbody>`)
		for _, cluster := range clusters {
			p.raw(`<tr><td>`)
			p.text(cluster.Name)
			p.raw(`</td><td>`)
			p.text(cluster.BootstrapServers)
			p.raw(`</td><td>`)
			p.text(cluster.KafkaVersion)
			p.raw(`</td><td>`)
			p.text(orDash(cluster.SecurityProtocol))
			p.raw(`</td><td><a href="`)
			p.url(routepath.Cluster(cluster.ID))
			p.raw(`">`)
			p.text(loc.Label("monitor"))
			p.raw(`</a></td></tr>`)
		}
		p.raw(`</tbody></table>`)
		return p.err
	})
}

// ClusterView is the data behind one cluster's metrics page.
type ClusterView struct {
	ID      int64
	Metrics api.ClusterMetrics
}

// ClusterPage renders a cluster's monitor summary.
func ClusterPage(loc *i18n.Labeler, view ClusterView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.raw(`<h1>`)
		p.text(loc.Message("console.cluster.title"))
		p.raw(` #`)
		p.text(strconv.FormatInt(view.ID, 10))
		p.raw(`</h1><dl class="metrics">`)
		for _, row := range MetricRows(loc, view.Metrics) {
			p.raw(`<dt>`)
			p.text(row.Label)
			p.raw(`</dt><dd>`)
			p.text(row.Value)
			p.raw(`</dd>`)
		}
		p.raw(`</dl><a href="`)
		p.url(routepath.Root)
		p.raw(`">`)
		p.text(loc.Message("console.back"))
		p.raw(`</a>`)
		return p.err
	})
}

// MetricRow is one labeled cluster metric.
type MetricRow struct {
	Label string
	Value string
}

// MetricRows lists the dashboard metrics with bilingual labels.
func MetricRows(loc *i18n.Labeler, m api.ClusterMetrics) []MetricRow {
	return []MetricRow{
		{Label: loc.Label("brokers"), Value: loc.Number(int64(m.BrokerCount))},
		{Label: loc.Label("topics"), Value: loc.Number(int64(m.TopicCount))},
		{Label: loc.Label("partitions"), Value: loc.Number(int64(m.PartitionCount))},
		{Label: loc.Label("underReplicated"), Value: loc.Number(int64(m.UnderReplicatedPartitions))},
		{Label: loc.Label("missingReplicas"), Value: loc.Number(int64(m.UnderReplicatedReplicas))},
		{Label: loc.Label("diskUsage"), Value: humanize.IBytes(uint64(max(m.TotalDiskUsageBytes, 0)))},
	}
}

// ErrorPage renders a bare message for failures outside the normal pages.
func ErrorPage(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.raw(`<p class="error" role="alert">`)
		p.text(message)
		p.raw(`</p>`)
		return p.err
	})
}

// printer writes markup and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) attr(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) url(s string) {
	p.attr(string(templ.URL(s)))
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
