package email_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/pkg/email"
	"github.com/dmitrymomot/emailcraft/pkg/validator"
)

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "team@example.com",
		Subject:  "Template preview",
		BodyHTML: "<html><body>GANANCE</body></html>",
		BodyText: "GANANCE",
		Tag:      "template-preview",
	}
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(*email.SendEmailParams)
		field string
	}{
		{"valid", func(*email.SendEmailParams) {}, ""},
		{"missing recipient", func(p *email.SendEmailParams) { p.SendTo = " " }, "send_to"},
		{"bad recipient", func(p *email.SendEmailParams) { p.SendTo = "team@" }, "send_to"},
		{"missing subject", func(p *email.SendEmailParams) { p.Subject = "" }, "subject"},
		{"missing body", func(p *email.SendEmailParams) { p.BodyHTML = "" }, "body_html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validParams()
			tt.edit(&p)
			err := p.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			errs, ok := validator.AsErrors(err)
			require.True(t, ok)
			assert.True(t, errs.Has(tt.field))
		})
	}
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(filepath.Join(dir, "out"))
	require.NoError(t, sender.SendEmail(context.Background(), validParams()))

	htmlFiles, err := filepath.Glob(filepath.Join(dir, "out", "*_template-preview.html"))
	require.NoError(t, err)
	require.Len(t, htmlFiles, 1)
	body, err := os.ReadFile(htmlFiles[0])
	require.NoError(t, err)
	assert.Equal(t, validParams().BodyHTML, string(body))

	text, err := os.ReadFile(strings.TrimSuffix(htmlFiles[0], ".html") + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "GANANCE", string(text))

	raw, err := os.ReadFile(strings.TrimSuffix(htmlFiles[0], ".html") + ".json")
	require.NoError(t, err)
	var meta map[string]string
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "team@example.com", meta["send_to"])
	assert.Equal(t, "Template preview", meta["subject"])

	bad := validParams()
	bad.SendTo = ""
	assert.Error(t, sender.SendEmail(context.Background(), bad))
}

func TestNew_PicksSender(t *testing.T) {
	t.Parallel()

	s, err := email.New(email.Config{DevDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, s)

	_, err = email.New(email.Config{PostmarkServerToken: "token", SenderEmail: "nope", SupportEmail: "support@example.com"})
	require.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ErrorCode":0,"Message":"OK","MessageID":"abc"}`)
	}))
	t.Cleanup(srv.Close)

	s, err := email.New(email.Config{
		PostmarkServerToken: "server-token",
		PostmarkBaseURL:     srv.URL,
		SenderEmail:         "editor@example.com",
		SupportEmail:        "support@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, s.SendEmail(context.Background(), validParams()))

	assert.Equal(t, "team@example.com", got["To"])
	assert.Equal(t, "editor@example.com", got["From"])
	assert.Equal(t, "Template preview", got["Subject"])
	assert.Equal(t, "GANANCE", got["TextBody"])
}

func TestPostmarkClient_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ErrorCode":300,"Message":"Invalid email request"}`)
	}))
	t.Cleanup(srv.Close)

	s, err := email.New(email.Config{
		PostmarkServerToken: "server-token",
		PostmarkBaseURL:     srv.URL,
		SenderEmail:         "editor@example.com",
		SupportEmail:        "support@example.com",
	})
	require.NoError(t, err)

	err = s.SendEmail(context.Background(), validParams())
	require.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.Contains(t, err.Error(), "Invalid email request")
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	body := `<html><head><title>Preview</title><style>.cta { color: #112233; }</style></head>` +
		`<body><h1>MAKE YOUR
		FAVORITE</h1><p>Fish &amp; Chips <b>today</b></p><table><tr><td>A</td><td>B</td></tr></table>` +
		`<script>alert(1)</script></body></html>`

	got := email.PlainText(body)
	assert.Contains(t, got, "MAKE YOUR\nFAVORITE")
	assert.Contains(t, got, "Fish & Chips today")
	assert.Contains(t, got, "A B")
	assert.NotContains(t, got, "#112233")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "<")
}
