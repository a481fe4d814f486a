package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/application/services/production"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

const dateLayout = "2006-01-02"

// Renderer writes planning results in one format
type Renderer struct {
	format string
	w      io.Writer
}

// NewRenderer creates a renderer for the given format
func NewRenderer(w io.Writer, format string) (*Renderer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return &Renderer{format: format, w: w}, nil
	case "":
		return &Renderer{format: FormatText, w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderPlan writes the outcome of a planning run
func (r *Renderer) RenderPlan(result *dto.PlanResult) error {
	view := result.View()
	switch r.format {
	case FormatJSON:
		return r.writeJSON(view)
	case FormatYAML:
		return r.writeYAML(view)
	case FormatCSV:
		return r.writeShortfallCSV(view.Shortfall)
	}

	fmt.Fprintf(r.w, "📊 Production Plan\n")
	fmt.Fprintf(r.w, "==================\n\n")

	if view.Production != nil {
		r.writeProductionSummary(view.Production)
	}

	verdict := color.GreenString("FEASIBLE")
	if !view.Feasible {
		verdict = color.RedString("NOT FEASIBLE")
	}
	fmt.Fprintf(r.w, "Verdict:   %s\n", verdict)
	fmt.Fprintf(r.w, "Stock as of: %s\n\n", view.SnapshotTakenAt.Format("2006-01-02 15:04:05"))

	if len(view.Demand) > 0 {
		fmt.Fprintf(r.w, "🧾 Ingredient Demand:\n")
		fmt.Fprintf(r.w, "%-15s %-12s\n", "Ingredient", "Required")
		fmt.Fprintf(r.w, "%-15s %-12s\n", "---------------", "------------")
		for _, line := range view.Demand {
			fmt.Fprintf(r.w, "%-15s %-12s\n", line.IngredientID, line.Required.String())
		}
		fmt.Fprintln(r.w)
	}

	r.writeShortfallTable(view.Shortfall)
	r.writeIssues(view.Unresolved, view.Dropped)

	return nil
}

// RenderProductions writes a list of stored productions
func (r *Renderer) RenderProductions(productions []*entities.Production) error {
	switch r.format {
	case FormatJSON:
		return r.writeJSON(productions)
	case FormatYAML:
		return r.writeYAML(productions)
	case FormatCSV:
		cw := csv.NewWriter(r.w)
		_ = cw.Write([]string{"id", "name", "status", "due_date", "created_at"})
		for _, p := range productions {
			_ = cw.Write([]string{p.ID, p.Name, string(p.Status), p.DueDate.Format(dateLayout), p.CreatedAt.Format("2006-01-02T15:04:05Z07:00")})
		}
		cw.Flush()
		return cw.Error()
	}

	if len(productions) == 0 {
		fmt.Fprintln(r.w, "No productions found")
		return nil
	}

	fmt.Fprintf(r.w, "%-36s %-28s %-12s %-12s\n", "ID", "Name", "Status", "Due Date")
	fmt.Fprintf(r.w, "%-36s %-28s %-12s %-12s\n",
		strings.Repeat("-", 36), strings.Repeat("-", 28), "------------", "------------")
	for _, p := range productions {
		fmt.Fprintf(r.w, "%-36s %-28s %-12s %-12s\n", p.ID, p.Name, statusLabel(p.Status), p.DueDate.Format(dateLayout))
	}
	return nil
}

// RenderProduction writes one stored production in detail
func (r *Renderer) RenderProduction(p *entities.Production) error {
	switch r.format {
	case FormatJSON:
		return r.writeJSON(p)
	case FormatYAML:
		return r.writeYAML(p)
	case FormatCSV:
		return r.writeShortfallCSV(p.Shortfall)
	}

	r.writeProductionSummary(p)
	fmt.Fprintf(r.w, "%-15s %-12s\n", "Product", "Quantity")
	fmt.Fprintf(r.w, "%-15s %-12s\n", "---------------", "------------")
	for _, line := range p.LineItems {
		fmt.Fprintf(r.w, "%-15s %-12s\n", line.ProductID, line.RequestedQuantity.String())
	}
	fmt.Fprintln(r.w)
	r.writeShortfallTable(p.Shortfall)
	return nil
}

// RenderRevalidation writes the outcome of re-checking a pending production
func (r *Renderer) RenderRevalidation(result *production.RevalidationResult) error {
	switch r.format {
	case FormatJSON:
		return r.writeJSON(result)
	case FormatYAML:
		return r.writeYAML(result)
	case FormatCSV:
		return r.writeShortfallCSV(result.Shortfall)
	}

	if result.Promoted {
		fmt.Fprintf(r.w, "✅ %s\n", color.GreenString("Production %s promoted to %s", result.Production.ID, result.Production.Status))
		return nil
	}

	fmt.Fprintf(r.w, "⏳ %s\n\n", color.YellowString("Production %s remains %s", result.Production.ID, result.Production.Status))
	r.writeShortfallTable(result.Shortfall)
	r.writeIssues(result.UnresolvedLines, nil)
	return nil
}

func (r *Renderer) writeProductionSummary(p *entities.Production) {
	fmt.Fprintf(r.w, "Production: %s\n", p.ID)
	fmt.Fprintf(r.w, "Name:       %s\n", p.Name)
	fmt.Fprintf(r.w, "Status:     %s\n", statusLabel(p.Status))
	fmt.Fprintf(r.w, "Due:        %s\n\n", p.DueDate.Format(dateLayout))
}

func (r *Renderer) writeShortfallTable(shortfall []entities.ShortfallEntry) {
	if len(shortfall) == 0 {
		return
	}
	fmt.Fprintf(r.w, "⚠️  Shortfall:\n")
	fmt.Fprintf(r.w, "%-15s %-12s %-12s %-12s\n", "Ingredient", "Required", "Available", "Missing")
	fmt.Fprintf(r.w, "%-15s %-12s %-12s %-12s\n",
		"---------------", "------------", "------------", "------------")
	for _, entry := range shortfall {
		fmt.Fprintf(r.w, "%-15s %-12s %-12s %-12s\n",
			entry.IngredientID,
			entry.Required.String(),
			entry.Available.String(),
			color.RedString("%s", entry.Missing.String()))
	}
	fmt.Fprintln(r.w)
}

func (r *Renderer) writeIssues(unresolved, dropped []dto.LineIssue) {
	for _, issue := range unresolved {
		fmt.Fprintf(r.w, "%s %s: %s\n", color.YellowString("Unresolved:"), issue.ProductID, issue.Reason)
	}
	for _, issue := range dropped {
		fmt.Fprintf(r.w, "%s %s: %s\n", color.YellowString("Dropped:"), issue.ProductID, issue.Reason)
	}
}

func (r *Renderer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(r.w, string(data))
	return err
}

func (r *Renderer) writeYAML(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

func (r *Renderer) writeShortfallCSV(shortfall []entities.ShortfallEntry) error {
	cw := csv.NewWriter(r.w)
	if err := cw.Write([]string{"ingredient_id", "required", "available", "missing"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, entry := range shortfall {
		if err := cw.Write([]string{
			string(entry.IngredientID),
			entry.Required.String(),
			entry.Available.String(),
			entry.Missing.String(),
		}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func statusLabel(status entities.ProductionStatus) string {
	switch status {
	case entities.InProgress:
		return color.GreenString("%s", status)
	case entities.Pending:
		return color.YellowString("%s", status)
	case entities.Cancelled:
		return color.RedString("%s", status)
	default:
		return status.String()
	}
}
