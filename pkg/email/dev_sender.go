package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes messages to a directory instead of delivering them.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender returns a DevSender writing into dir.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type devMetadata struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

// SendEmail writes <timestamp>_<tag or subject>.html and .json, plus .txt
// when the message has a plain-text body.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	id := params.Tag
	if id == "" {
		id = params.Subject
	}
	base := filepath.Join(d.dir, now.Format("2006_01_02_150405")+"_"+safeName(id))

	if err := os.WriteFile(base+".html", []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	if params.BodyText != "" {
		if err := os.WriteFile(base+".txt", []byte(params.BodyText), 0o644); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
		}
	}
	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(base+".json", meta, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9\-_.]`)

func safeName(s string) string {
	s = unsafeChars.ReplaceAllString(strings.ReplaceAll(strings.ToLower(s), " ", "_"), "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "email"
	}
	return s
}
