package tui

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/huangsam/benchboard/schema"
	"golang.org/x/term"
)

// fieldsPerGroup caps the inputs shown on one page of the form.
const fieldsPerGroup = 6

// ErrFormAborted is returned when the user cancels the submission form.
var ErrFormAborted = errors.New("submission canceled")

// RunSubmissionForm prompts for every form field of the variant and returns the raw values.
// Values given in prefill start as the field defaults.
func RunSubmissionForm(v schema.Variant, in io.Reader, out io.Writer, prefill map[string]string) (map[string]string, error) {
	fields := v.FormFields()
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = prefill[f.Name]
	}

	form := huh.NewForm(formGroups(v, fields, values)...).
		WithInput(in).
		WithOutput(out)
	// Use accessible mode for piped input.
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrFormAborted
		}
		return nil, fmt.Errorf("submission form failed: %w", err)
	}

	result := make(map[string]string, len(fields))
	for i, f := range fields {
		result[f.Name] = strings.TrimSpace(values[i])
	}
	return result, nil
}

// formGroups splits the inputs into pages bound to the values slice.
func formGroups(v schema.Variant, fields []schema.FormField, values []string) []*huh.Group {
	var groups []*huh.Group
	for start := 0; start < len(fields); start += fieldsPerGroup {
		end := min(start+fieldsPerGroup, len(fields))
		inputs := make([]huh.Field, 0, end-start)
		for i := start; i < end; i++ {
			inputs = append(inputs, huh.NewInput().
				Title(fields[i].Label).
				Description(fieldHint(fields[i])).
				Value(&values[i]).
				Validate(validateFormValue(fields[i])))
		}
		group := huh.NewGroup(inputs...)
		if start == 0 {
			group = group.Title("Submit to " + v.Title).Description(v.Description)
		}
		groups = append(groups, group)
	}
	return groups
}

func fieldHint(f schema.FormField) string {
	var parts []string
	if f.Required {
		parts = append(parts, "required")
	} else {
		parts = append(parts, "optional")
	}
	if f.Type == "number" {
		parts = append(parts, rangeHint(f))
	}
	return strings.Join(parts, ", ")
}

func rangeHint(f schema.FormField) string {
	if f.Max > 0 {
		return fmt.Sprintf("between %g and %g", f.Min, f.Max)
	}
	return fmt.Sprintf("at least %g", f.Min)
}

// validateFormValue checks one input as it is typed. The submission is parsed again on submit.
func validateFormValue(f schema.FormField) func(string) error {
	return func(raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			if f.Required {
				return fmt.Errorf("%s is required", f.Label)
			}
			return nil
		}
		if f.Type != "number" {
			return nil
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%s must be a number", f.Label)
		}
		if value < f.Min || (f.Max > 0 && value > f.Max) {
			return fmt.Errorf("%s must be %s", f.Label, rangeHint(f))
		}
		return nil
	}
}
