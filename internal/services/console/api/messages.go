package api

import (
	"context"
	"net/http"
)

// TopicMessages searches a topic's messages.
func (c *Client) TopicMessages(ctx context.Context, clusterID int64, name string, query MessageQuery) (MessageSearchResult, error) {
	if err := c.requireName("topicName", name); err != nil {
		return MessageSearchResult{}, err
	}
	var result MessageSearchResult
	if err := c.call(ctx, http.MethodGet, topicPath(clusterID, name)+"/messages", query.values(), nil, &result); err != nil {
		return MessageSearchResult{}, err
	}
	return result, nil
}

// SendTopicMessage produces a message to a topic.
func (c *Client) SendTopicMessage(ctx context.Context, clusterID int64, name string, req SendMessageRequest) error {
	if err := c.requireName("topicName", name); err != nil {
		return err
	}
	if err := c.validateBody(req); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, topicPath(clusterID, name)+"/messages", nil, req, nil)
}

// MessageHistory returns one page of messages sent through the console.
func (c *Client) MessageHistory(ctx context.Context, clusterID int64, name string, page Page) (PageResult[MessageHistory], error) {
	if err := c.requireName("topicName", name); err != nil {
		return PageResult[MessageHistory]{}, err
	}
	var result PageResult[MessageHistory]
	if err := c.call(ctx, http.MethodGet, topicPath(clusterID, name)+"/messages/history", page.values(), nil, &result); err != nil {
		return PageResult[MessageHistory]{}, err
	}
	return result, nil
}
