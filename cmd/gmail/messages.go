package main

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"google.golang.org/api/gmail/v1"

	"github.com/assistkit/assistkit/pkg/assistkit"
)

const previewLen = 80

// messageListOutput is the JSON shape for list and search results.
type messageListOutput struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	Snippet string `json:"snippet,omitempty"`
}

type sendOutput struct {
	ID string `json:"id"`
}

func headerOr(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok && v != "" {
		return v
	}
	return "N/A"
}

// fetchSummaries resolves message IDs into header summaries. Fetch failures
// for individual messages are aggregated so every failing ID is reported,
// then the whole fetch fails.
func fetchSummaries(ctx context.Context, conn *assistkit.Conn, ids []*gmail.Message) ([]messageListOutput, error) {
	var merr *multierror.Error
	summaries := make([]messageListOutput, 0, len(ids))
	for _, ref := range ids {
		msg, err := conn.GmailService().Users.Messages.Get("me", ref.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject", "Date").
			Context(ctx).Do()
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("fetching message %s: %w", ref.Id, err))
			continue
		}
		headers := assistkit.HeaderMap(msg)
		summaries = append(summaries, messageListOutput{
			ID:      msg.Id,
			From:    headerOr(headers, "From"),
			Subject: headerOr(headers, "Subject"),
			Date:    headerOr(headers, "Date"),
			Snippet: assistkit.Truncate(msg.Snippet, previewLen),
		})
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func runMessagesList(ctx context.Context, conn *assistkit.Conn, unread bool, limit int, out *assistkit.OutputWriter) error {
	if limit <= 0 {
		if out.JSON {
			return out.WriteJSON([]messageListOutput{})
		}
		out.WriteMessage("No emails found.")
		return nil
	}

	call := conn.GmailService().Users.Messages.List("me").MaxResults(int64(limit))
	if unread {
		call = call.Q("is:unread")
	}
	res, err := call.Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	if len(res.Messages) == 0 {
		if out.JSON {
			return out.WriteJSON([]messageListOutput{})
		}
		out.WriteMessage("No emails found.")
		return nil
	}

	summaries, err := fetchSummaries(ctx, conn, res.Messages)
	if err != nil {
		return err
	}

	if out.JSON {
		return out.WriteJSON(summaries)
	}

	title := fmt.Sprintf("Emails (showing %d)", len(summaries))
	if unread {
		title = fmt.Sprintf("Unread Emails (showing %d)", len(summaries))
	}
	out.WriteBanner(60, title)
	out.WriteMessage("")
	for _, s := range summaries {
		out.Writef("ID: %s", s.ID)
		out.Writef("From: %s", s.From)
		out.Writef("Subject: %s", s.Subject)
		out.Writef("Date: %s", s.Date)
		out.Writef("Preview: %s...", s.Snippet)
		out.WriteRule(40)
	}
	return nil
}

func runMessagesSearch(ctx context.Context, conn *assistkit.Conn, query string, limit int, out *assistkit.OutputWriter) error {
	if limit <= 0 {
		if out.JSON {
			return out.WriteJSON([]messageListOutput{})
		}
		out.Writef("No emails matching: %s", query)
		return nil
	}

	res, err := conn.GmailService().Users.Messages.List("me").
		Q(query).
		MaxResults(int64(limit)).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to search messages: %w", err)
	}

	if len(res.Messages) == 0 {
		if out.JSON {
			return out.WriteJSON([]messageListOutput{})
		}
		out.Writef("No emails matching: %s", query)
		return nil
	}

	summaries, err := fetchSummaries(ctx, conn, res.Messages)
	if err != nil {
		return err
	}

	if out.JSON {
		return out.WriteJSON(summaries)
	}

	out.WriteBanner(60, fmt.Sprintf("Search: %s (%d results)", query, len(summaries)))
	out.WriteMessage("")
	for _, s := range summaries {
		out.Writef("ID: %s", s.ID)
		out.Writef("From: %s", s.From)
		out.Writef("Subject: %s", s.Subject)
		out.WriteRule(40)
	}
	return nil
}

func runMessagesRead(ctx context.Context, conn *assistkit.Conn, messageID string, markdown bool, out *assistkit.OutputWriter) error {
	msg, err := conn.GmailService().Users.Messages.Get("me", messageID).
		Format("full").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get message %s: %w", messageID, err)
	}

	headers := assistkit.HeaderMap(msg)

	if markdown {
		doc, err := formatMessageAsMarkdown(msg, headers)
		if err != nil {
			return err
		}
		out.WriteMessage(doc)
		return nil
	}

	body := assistkit.ExtractBody(msg)

	if out.JSON {
		return out.WriteJSON(map[string]string{
			"id":      msg.Id,
			"from":    headerOr(headers, "From"),
			"to":      headerOr(headers, "To"),
			"subject": headerOr(headers, "Subject"),
			"date":    headerOr(headers, "Date"),
			"body":    body,
		})
	}

	out.WriteBanner(60,
		fmt.Sprintf("From: %s", headerOr(headers, "From")),
		fmt.Sprintf("To: %s", headerOr(headers, "To")),
		fmt.Sprintf("Subject: %s", headerOr(headers, "Subject")),
		fmt.Sprintf("Date: %s", headerOr(headers, "Date")),
	)
	out.WriteMessage("")
	out.WriteMessage(body)
	return nil
}

func runMessagesSend(ctx context.Context, conn *assistkit.Conn, to, subject, body string, out *assistkit.OutputWriter) error {
	raw := assistkit.MIMEEncode(assistkit.BuildPlainMessage(to, subject, body))
	sent, err := conn.GmailService().Users.Messages.Send("me", &gmail.Message{Raw: raw}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	if out.JSON {
		return out.WriteJSON(sendOutput{ID: sent.Id})
	}
	out.Writef("Email sent successfully. Message ID: %s", sent.Id)
	return nil
}
