package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qalookup/internal/domain"
)

// Title is shown above the search field
const Title = "搜题 API"

// Notice is the attribution shown under the answer card
const Notice = "答案均来自整合第三方的接口，在此仅做展示，如有侵权，请联系：1627295329@qq.com"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width        int
	Height       int
	Record       domain.AnswerRecord
	Query        string // query that produced Record, empty when none
	Busy         bool
	ClearVisible bool
	TextInput    string // rendered search field
	ModeName     string
	Spinner      string // rendered spinner frame, shown while busy
	HelpView     string
	ShowNotice   bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{
		styles: NewStyles(),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	cardWidth := min(width-6, 72)
	if cardWidth < 20 {
		cardWidth = 20
	}

	content := &strings.Builder{}

	titleLine := r.styles.Title.Render(Title)
	if state.ModeName != "" {
		titleLine = lipgloss.JoinHorizontal(lipgloss.Top, titleLine, "  ", r.styles.Dim.Render("["+state.ModeName+"]"))
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	content.WriteString(r.renderInput(state, cardWidth))
	content.WriteString("\n")

	content.WriteString(r.renderCard(state, cardWidth))
	content.WriteString("\n")

	if state.ShowNotice {
		content.WriteString(r.renderNotice(cardWidth))
		content.WriteString("\n")
	}

	if state.HelpView != "" {
		// Push help to the bottom when there is room
		used := strings.Count(content.String(), "\n") + 1
		available := state.Height - 2
		helpLines := strings.Count(state.HelpView, "\n") + 1
		if pad := available - used - helpLines; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderInput(state ViewState, width int) string {
	marker := " "
	if state.ClearVisible {
		marker = r.styles.ClearMarker.Render("✕")
	}
	line := fmt.Sprintf("%s %s %s", r.styles.Prompt.Render("›"), state.TextInput, marker)

	style := r.styles.Input
	if state.Busy {
		style = r.styles.InputBusy
	}
	return style.Width(width).Render(line)
}

func (r *Renderer) renderCard(state ViewState, width int) string {
	rec := state.Record
	b := &strings.Builder{}

	badge := r.styles.Badge.Render(rec.Type.Label()+" /") + r.styles.BadgeWire.Render(string(rec.Type))
	if state.Busy && state.Spinner != "" {
		badge = lipgloss.JoinHorizontal(lipgloss.Top, badge, "  ", r.styles.Spinner.Render(state.Spinner))
	}
	b.WriteString(badge)
	b.WriteString("\n")
	if state.Query != "" {
		b.WriteString(r.styles.Dim.Render("查询：" + state.Query))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(r.styles.Label.Render("答案："))
	for i, answer := range rec.Answers {
		b.WriteString(r.styles.Answer.Render(answer))
		if i != len(rec.Answers)-1 {
			b.WriteString(domain.AnswerSeparator)
		}
	}
	b.WriteString("\n")

	b.WriteString(r.styles.Label.Render("题目："))
	b.WriteString(rec.Question)
	b.WriteString("\n\n")

	b.WriteString(r.styles.Dim.Render("来源："))
	b.WriteString(r.styles.Source.Render(rec.From))
	if rec.Title != "" {
		b.WriteString(" ")
		b.WriteString(r.styles.Dim.Render(rec.Title))
	}

	style := r.styles.Card
	if state.Busy {
		style = r.styles.CardBusy
	}
	return style.Width(width).Render(b.String())
}

func (r *Renderer) renderNotice(width int) string {
	body := r.styles.NoticeTitle.Render("ⓘ 提示") + "\n" + Notice
	return r.styles.Notice.Width(width).Render(body)
}

// RenderPlain renders a record as plain text for the pager and the CLI
func RenderPlain(rec domain.AnswerRecord) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "题型：%s / %s\n", rec.Type.Label(), rec.Type)
	fmt.Fprintf(b, "答案：%s\n", rec.JoinedAnswers(domain.AnswerSeparator))
	fmt.Fprintf(b, "题目：%s\n", rec.Question)
	fmt.Fprintf(b, "来源：%s", rec.From)
	if rec.Title != "" {
		fmt.Fprintf(b, " %s", rec.Title)
	}
	b.WriteString("\n")
	return b.String()
}
