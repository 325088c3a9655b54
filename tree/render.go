package tree

import (
	"html"
	"strings"
)

const (
	classFolder = "folder"
	classFile   = "file"
)

// Render serializes the children of root into nested <ul>/<li> markup. Directories come before files.
func Render(root *Node) string {
	var sb strings.Builder
	renderChildren(&sb, root, 1)

	return sb.String()
}

func renderChildren(sb *strings.Builder, node *Node, depth int) {
	dirs, files := Sorted(node, depth)

	sb.WriteString("<ul>")

	for _, dir := range dirs {
		sb.WriteString("<li>")
		writeLabel(sb, classFolder, dir.Name)
		renderChildren(sb, dir, depth+1)
		sb.WriteString("</li>")
	}

	for _, file := range files {
		sb.WriteString("<li>")
		writeLabel(sb, classFile, file.Name)
		sb.WriteString("</li>")
	}

	sb.WriteString("</ul>")
}

func writeLabel(sb *strings.Builder, class string, name string) {
	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	sb.WriteString(`">`)
	sb.WriteString(html.EscapeString(name))
	sb.WriteString("</span>")
}

// RenderHTML renders root into the template file at templatePath
func RenderHTML(templatePath string, root *Node) (string, error) {
	template, err := LoadTemplate(templatePath)
	if err != nil {
		return "", err
	}

	return Fill(template, Render(root))
}
