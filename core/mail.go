package core

import (
	htmltmpl "html/template"
	"io/fs"
	"net/mail"
	"path/filepath"
	"strings"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/fs"
)

var (
	textTemplates map[string]*texttmpl.Template
	htmlTemplates map[string]*htmltmpl.Template
	tmplInit      sync.Once
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	// ContextData wraps TemplateData with app-wide template context.
	ContextData struct {
		FrontendBaseURL string
		AppName         string
		Data            interface{}
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// ParseEmailTemplates loads all email templates from the embedded FS.
// It must be called once at app start-up.
func ParseEmailTemplates(logger Logger) {
	tmplInit.Do(func() {
		textTemplates = make(map[string]*texttmpl.Template)
		htmlTemplates = make(map[string]*htmltmpl.Template)

		err := fs.WalkDir(appfs.FS, "templates/email", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			ext := filepath.Ext(path)
			name := strings.TrimSuffix(filepath.Base(path), ext)
			switch ext {
			case ".txt":
				tmpl, err := texttmpl.ParseFS(appfs.FS, path)
				if err != nil {
					return err
				}
				textTemplates[name] = tmpl
			case ".html":
				tmpl, err := htmltmpl.ParseFS(appfs.FS, path)
				if err != nil {
					return err
				}
				htmlTemplates[name] = tmpl
			}
			return nil
		})
		if err != nil {
			logger.Fatal("parsing email templates", errors.Wrap(err, "parsing email templates"))
		}
	})
}

func (m *EmailMessage) contextData(conf *Config) ContextData {
	return ContextData{
		FrontendBaseURL: conf.FrontendBaseURL,
		AppName:         conf.AppName,
		Data:            m.TemplateData,
	}
}

// Render resolves TextContent and HTMLContent from either BodyStr or the
// message's template pair.
func (m *EmailMessage) Render(conf *Config) error {
	if m.BodyStr != "" {
		m.TextContent = m.BodyStr
		return nil
	}
	if m.TemplateName == "" {
		return nil
	}

	data := m.contextData(conf)
	if tmpl, ok := textTemplates[m.TemplateName]; ok {
		var buff strings.Builder
		if err := tmpl.Execute(&buff, data); err != nil {
			return errors.Wrapf(err, "rendering %s.txt", m.TemplateName)
		}
		m.TextContent = buff.String()
	}
	if tmpl, ok := htmlTemplates[m.TemplateName]; ok {
		var buff strings.Builder
		if err := tmpl.Execute(&buff, data); err != nil {
			return errors.Wrapf(err, "rendering %s.html", m.TemplateName)
		}
		m.HTMLContent = buff.String()
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0 || len(m.Cc) > 0 || len(m.Bcc) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != "" || m.HTMLContent != ""
}
