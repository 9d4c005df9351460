package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"midnightcli/pkg/core"
)

// Prompter asks interactive questions on an injected reader/writer pair so
// tests can script the conversation.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ProjectName asks for a project name and re-asks until the answer matches
// the lowercase-alphanumeric-hyphen pattern. An empty answer takes the
// default.
func (p *Prompter) ProjectName(def string) (string, error) {
	for {
		fmt.Fprintf(p.out, "Project name (%s): ", def)
		answer, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("failed to read project name: %v", err)
		}
		if answer == "" {
			answer = def
		}
		if core.ValidProjectName(answer) {
			return answer, nil
		}
		fmt.Fprintln(p.out, "Project name must be lowercase letters, numbers and hyphens only")
	}
}

// SelectTemplate asks the user to pick one of the built-in templates
func (p *Prompter) SelectTemplate(def core.Template) (core.Template, error) {
	templates := core.Templates()
	fmt.Fprintln(p.out, "Select a template:")
	for i, t := range templates {
		marker := " "
		if t == def {
			marker = "*"
		}
		fmt.Fprintf(p.out, "  %s %d) %s\n", marker, i+1, t)
	}

	for {
		fmt.Fprintf(p.out, "Template [1-%d]: ", len(templates))
		answer, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("failed to read template choice: %v", err)
		}
		if answer == "" {
			return def, nil
		}
		if core.ValidTemplate(answer) {
			return core.Template(answer), nil
		}
		var idx int
		if _, err := fmt.Sscanf(answer, "%d", &idx); err == nil && idx >= 1 && idx <= len(templates) {
			return templates[idx-1], nil
		}
		fmt.Fprintln(p.out, "Invalid choice")
	}
}

// Confirm asks a yes/no question; an empty answer takes the default
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s (%s): ", label, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, fmt.Errorf("failed to read answer: %v", err)
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n")
	}
}
