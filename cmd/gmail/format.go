package main

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"google.golang.org/api/gmail/v1"
	"gopkg.in/yaml.v3"

	"github.com/assistkit/assistkit/pkg/assistkit"
)

// messageFrontmatter is the YAML frontmatter emitted above a markdown body.
type messageFrontmatter struct {
	MessageID string `yaml:"message_id"`
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Subject   string `yaml:"subject"`
	Date      string `yaml:"date"`
	Note      string `yaml:"note,omitempty"` // For fallback messages
}

// convertHTMLToMarkdown converts an HTML email body to markdown.
func convertHTMLToMarkdown(htmlBody string) (string, error) {
	markdown, err := md.ConvertString(htmlBody)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// formatMessageAsMarkdown renders a message as YAML frontmatter plus a
// markdown body. Plain text bodies pass through as-is; HTML-only bodies are
// converted, falling back to the snippet when conversion fails.
func formatMessageAsMarkdown(msg *gmail.Message, headers map[string]string) (string, error) {
	fm := messageFrontmatter{
		MessageID: msg.Id,
		From:      headerOr(headers, "From"),
		To:        headerOr(headers, "To"),
		Subject:   headerOr(headers, "Subject"),
		Date:      headerOr(headers, "Date"),
	}

	body := assistkit.ExtractText(msg)
	if body == "" {
		if html := assistkit.ExtractHTML(msg); html != "" {
			converted, err := convertHTMLToMarkdown(html)
			if err != nil {
				fm.Note = "HTML conversion failed, showing snippet"
				body = msg.Snippet
			} else {
				body = converted
			}
		}
	}
	if body == "" {
		if msg.Snippet != "" {
			fm.Note = "No readable body, showing snippet"
			body = msg.Snippet
		} else {
			body = assistkit.NoBodyText
		}
	}

	var output strings.Builder
	output.WriteString("---\n")
	frontmatterBytes, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	output.Write(frontmatterBytes)
	output.WriteString("---\n\n")
	output.WriteString(body)
	return output.String(), nil
}
