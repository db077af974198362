package ports

// TemplateEngine renders reply and help templates.
type TemplateEngine interface {
	// Render executes raw as a template against data.
	Render(raw []byte, data map[string]any) ([]byte, error)
}
