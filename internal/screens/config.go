package screens

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/quarterdeckhq/quarterdeck/internal/api"
	"github.com/quarterdeckhq/quarterdeck/internal/types"
	"github.com/quarterdeckhq/quarterdeck/internal/ui"
)

// tickMsg triggers a periodic refresh. It carries the issuing screen's
// ID so a screen can drop ticks that belong to another screen.
type tickMsg struct {
	screenID string
	time     time.Time
}

// screenDataMsg delivers a completed fetch back to its screen. Fetches
// run in tea.Cmd goroutines; rows are only applied here, on the event
// loop.
type screenDataMsg struct {
	screenID string
	items    []any
	took     time.Duration
}

// ColumnConfig defines a column in the resource list table
type ColumnConfig struct {
	Field    string           // Field name in resource struct
	Title    string           // Column display title
	Width    int              // 0 = dynamic, >0 = fixed
	Format   func(any) string // Optional custom formatter
	Priority int              // 1=critical, 2=important, 3=optional
}

// FetchFunc loads the rows for a screen. The filter context is nil when
// the screen shows everything.
type FetchFunc func(ctx context.Context, client api.Client, fc *types.FilterContext) ([]any, error)

// NavigationFunc handles Enter key navigation for a screen
type NavigationFunc func(screen *ConfigScreen) tea.Cmd

// OperationFunc executes a screen operation against the current state
type OperationFunc func(screen *ConfigScreen) tea.Cmd

// OperationConfig defines an operation that can be executed
type OperationConfig struct {
	ID          string
	Name        string
	Description string
	Shortcut    string
	Execute     OperationFunc
}

// ScreenConfig defines configuration for a generic resource screen
type ScreenConfig struct {
	ID           string
	Title        string
	Fetch        FetchFunc
	Columns      []ColumnConfig
	SearchFields []string
	Operations   []OperationConfig
	HelpText     string

	// Optional behavior flags
	RefreshInterval time.Duration // 0 disables periodic refresh
	TrackSelection  bool

	// Optional navigation handler (contextual navigation on Enter key)
	NavigationHandler NavigationFunc

	// Optional custom overrides (Level 2 customization).
	// CustomView may return "" to fall back to the default table view.
	CustomRefresh func(*ConfigScreen) tea.Cmd
	CustomFilter  func(*ConfigScreen, string)
	CustomUpdate  func(*ConfigScreen, tea.Msg) (tea.Model, tea.Cmd)
	CustomView    func(*ConfigScreen) string
}

// ConfigScreen is a generic screen implementation driven by ScreenConfig
type ConfigScreen struct {
	config   ScreenConfig
	client   api.Client
	table    table.Model
	items    []any
	filtered []any
	filter   string
	theme    *ui.Theme
	width    int
	height   int

	// For selection tracking (if enabled)
	selectedKey string

	// For contextual navigation filtering
	filterContext *types.FilterContext

	// Column visibility tracking for responsive display
	visibleColumns []ColumnConfig
	hiddenCount    int

	// Track first visit for the loading notice
	initialized bool

	// Set while an embedded form is consuming raw keystrokes
	capturingInput bool
}

// NewConfigScreen creates a new config-driven screen
func NewConfigScreen(cfg ScreenConfig, client api.Client, theme *ui.Theme) *ConfigScreen {
	columns := make([]table.Column, len(cfg.Columns))
	for i, col := range cfg.Columns {
		columns[i] = table.Column{
			Title: col.Title,
			Width: col.Width,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(theme.ToTableStyles())

	return &ConfigScreen{
		config:         cfg,
		client:         client,
		table:          t,
		theme:          theme,
		visibleColumns: cfg.Columns,
		hiddenCount:    0,
	}
}

// Implement Screen interface

func (s *ConfigScreen) ID() string {
	return s.config.ID
}

func (s *ConfigScreen) Title() string {
	return s.config.Title
}

func (s *ConfigScreen) HelpText() string {
	if s.config.HelpText != "" {
		return s.config.HelpText
	}
	return "↑/↓: navigate • enter: open • type: filter • esc: back • q: quit"
}

func (s *ConfigScreen) Operations() []types.Operation {
	ops := make([]types.Operation, len(s.config.Operations))
	for i, opCfg := range s.config.Operations {
		ops[i] = types.Operation{
			ID:          opCfg.ID,
			Name:        opCfg.Name,
			Description: opCfg.Description,
			Shortcut:    opCfg.Shortcut,
			Execute:     s.makeOperationHandler(opCfg),
		}
	}
	return ops
}

// CapturingInput reports whether the screen is consuming raw keystrokes,
// such as while a form is open. The app then routes keys straight here.
func (s *ConfigScreen) CapturingInput() bool {
	return s.capturingInput
}

func (s *ConfigScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.Refresh(), s.scheduleTick()}

	// First visit shows a loading notice; revisits already have rows on
	// screen and just refetch quietly.
	if !s.initialized {
		s.initialized = true
		title := s.config.Title
		cmds = append(cmds, func() tea.Msg {
			return types.LoadingMsg("Loading " + title + "...")
		})
	}

	return tea.Batch(cmds...)
}

// scheduleTick arms the next periodic refresh, or nil when the screen
// does not poll.
func (s *ConfigScreen) scheduleTick() tea.Cmd {
	interval := s.config.RefreshInterval
	if interval <= 0 {
		return nil
	}

	id := s.config.ID
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg{screenID: id, time: t}
	})
}

func (s *ConfigScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.config.CustomUpdate != nil {
		return s.config.CustomUpdate(s, msg)
	}

	return s.DefaultUpdate(msg)
}

func (s *ConfigScreen) DefaultUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screenDataMsg:
		if msg.screenID != s.config.ID {
			return s, nil
		}
		s.setItems(msg.items)
		took := msg.took
		return s, func() tea.Msg {
			return types.RefreshCompleteMsg{Duration: took}
		}

	case tickMsg:
		// Ignore ticks from other screens (prevents multiple concurrent ticks)
		if msg.screenID != s.config.ID {
			return s, nil
		}
		return s, tea.Batch(s.Refresh(), s.scheduleTick())

	case types.FilterUpdateMsg:
		s.SetFilter(msg.Filter)
		return s, nil

	case types.ClearFilterMsg:
		s.SetFilter("")
		return s, nil

	case tea.KeyMsg:
		// Intercept Enter for contextual navigation
		if msg.Type == tea.KeyEnter {
			if cmd := s.handleEnterKey(); cmd != nil {
				return s, cmd
			}
		}

		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		if s.config.TrackSelection {
			s.updateSelectedKey()
		}
		return s, cmd

	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s, nil
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

// setItems installs freshly fetched rows and reapplies filter and cursor.
func (s *ConfigScreen) setItems(items []any) {
	s.items = items
	s.applyFilter()
	if s.config.TrackSelection {
		s.restoreCursorPosition()
	}
}

func (s *ConfigScreen) View() string {
	if s.config.CustomView != nil {
		if v := s.config.CustomView(s); v != "" {
			return v
		}
	}

	// Check if we have a filter context and no results
	if s.filterContext != nil && len(s.table.Rows()) == 0 {
		return s.renderEmptyFilteredView()
	}

	return s.table.View()
}

// renderEmptyFilteredView shows a helpful message when filter returns no results
func (s *ConfigScreen) renderEmptyFilteredView() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(s.theme.Muted).
		Bold(true).
		Align(lipgloss.Center)

	hintStyle := lipgloss.NewStyle().
		Foreground(s.theme.Muted).
		Align(lipgloss.Center)

	title := titleStyle.Render("No resources found")
	hint := hintStyle.Render("Press ESC to go back")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		hint,
	)

	return lipgloss.Place(
		s.width,
		s.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// SetSize updates dimensions and recalculates dynamic column widths
func (s *ConfigScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.table.SetHeight(height)

	// Calculate padding
	padding := len(s.config.Columns) * 2
	availableWidth := width - padding

	// Sort columns by priority (1 first, then 2, then 3)
	sorted := make([]ColumnConfig, len(s.config.Columns))
	copy(sorted, s.config.Columns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	// Calculate which columns fit
	visibleColumns := []ColumnConfig{}
	usedWidth := 0

	for _, col := range sorted {
		if s.shouldExcludeColumn(col, availableWidth, usedWidth) {
			continue
		}

		visibleColumns = append(visibleColumns, col)
		colWidth := col.Width
		if colWidth == 0 {
			colWidth = MinDynamicColumnWidth
		}
		usedWidth += colWidth
	}

	// Restore original column order
	s.visibleColumns = s.restoreColumnOrder(visibleColumns)
	s.hiddenCount = len(s.config.Columns) - len(visibleColumns)

	// Calculate dynamic widths for visible columns only
	fixedTotal := 0
	dynamicCount := 0

	for _, col := range s.visibleColumns {
		if col.Width > 0 {
			fixedTotal += col.Width
		} else {
			dynamicCount++
		}
	}

	visiblePadding := len(s.visibleColumns) * 2
	dynamicWidth := MinDynamicColumnWidth
	if dynamicCount > 0 {
		dynamicWidth = (width - fixedTotal - visiblePadding) / dynamicCount
		if dynamicWidth < MinDynamicColumnWidth {
			dynamicWidth = MinDynamicColumnWidth
		}
	}

	// Build table columns from visible columns only
	columns := make([]table.Column, len(s.visibleColumns))
	for i, col := range s.visibleColumns {
		w := col.Width
		if w == 0 {
			w = dynamicWidth
		}
		columns[i] = table.Column{
			Title: col.Title,
			Width: w,
		}
	}

	// Clear rows BEFORE setting columns to prevent panic
	// SetColumns() internally triggers rendering, so we need empty rows first
	s.table.SetRows([]table.Row{})

	s.table.SetColumns(columns)
	s.table.SetWidth(width)

	// Now rebuild rows with correct number of columns
	s.updateTable()
}

// shouldExcludeColumn determines if a column should be hidden based on
// priority and available width. Called during SetSize() to calculate which
// columns fit in the terminal.
func (s *ConfigScreen) shouldExcludeColumn(col ColumnConfig, availableWidth int, usedWidth int) bool {
	colWidth := col.Width
	if colWidth == 0 {
		colWidth = MinDynamicColumnWidth
	}

	// Priority 1 (critical) always shows, even if squished
	if col.Priority == 1 {
		return false
	}

	// Priority 2 and 3 only show if they fit
	return usedWidth+colWidth > availableWidth
}

// restoreColumnOrder restores the original column order after sorting by
// priority. This ensures columns appear in the same order as defined in
// screen config, not sorted by priority.
func (s *ConfigScreen) restoreColumnOrder(visible []ColumnConfig) []ColumnConfig {
	result := []ColumnConfig{}

	for _, original := range s.config.Columns {
		for _, v := range visible {
			if v.Field == original.Field {
				result = append(result, v)
				break
			}
		}
	}

	return result
}

// Refresh fetches rows off the event loop and hands them back as a
// screenDataMsg. State the closure needs is captured up front so the
// goroutine never touches the screen.
func (s *ConfigScreen) Refresh() tea.Cmd {
	if s.config.CustomRefresh != nil {
		return s.config.CustomRefresh(s)
	}

	id := s.config.ID
	title := s.config.Title
	fetch := s.config.Fetch
	client := s.client
	fc := s.filterContext

	return func() tea.Msg {
		start := time.Now()

		items, err := fetch(context.Background(), client, fc)
		if err != nil {
			return types.ErrorStatusMsg(fmt.Sprintf("Failed to fetch %s: %v", title, err))
		}

		return screenDataMsg{screenID: id, items: items, took: time.Since(start)}
	}
}

// ApplyFilterContext sets the filter context for this screen
func (s *ConfigScreen) ApplyFilterContext(ctx *types.FilterContext) {
	s.filterContext = ctx
}

// GetFilterContext returns the current filter context
func (s *ConfigScreen) GetFilterContext() *types.FilterContext {
	return s.filterContext
}

// GetRefreshInterval returns the screen's refresh interval
func (s *ConfigScreen) GetRefreshInterval() time.Duration {
	return s.config.RefreshInterval
}

// GetFilter returns the active fuzzy filter string, empty when unfiltered.
func (s *ConfigScreen) GetFilter() string {
	return s.filter
}

// SetFilter applies a filter to the resource list
func (s *ConfigScreen) SetFilter(filter string) {
	s.filter = filter

	if s.config.CustomFilter != nil {
		s.config.CustomFilter(s, filter)
		return
	}

	s.applyFilter()
}

// applyFilter filters items based on fuzzy search
func (s *ConfigScreen) applyFilter() {
	if s.filter == "" {
		s.filtered = s.items
	} else {
		// Build search strings using reflection on configured fields
		searchStrings := make([]string, len(s.items))
		for i, item := range s.items {
			fields := []string{}
			for _, fieldName := range s.config.SearchFields {
				val := getFieldValue(item, fieldName)
				fields = append(fields, fmt.Sprint(val))
			}
			searchStrings[i] = strings.ToLower(strings.Join(fields, " "))
		}

		// Handle negation
		if strings.HasPrefix(s.filter, "!") {
			negatePattern := strings.TrimPrefix(s.filter, "!")
			matches := fuzzy.Find(negatePattern, searchStrings)
			matchSet := make(map[int]bool)
			for _, m := range matches {
				matchSet[m.Index] = true
			}

			s.filtered = make([]any, 0)
			for i, item := range s.items {
				if !matchSet[i] {
					s.filtered = append(s.filtered, item)
				}
			}
		} else {
			matches := fuzzy.Find(s.filter, searchStrings)
			s.filtered = make([]any, len(matches))
			for i, m := range matches {
				s.filtered[i] = s.items[m.Index]
			}
		}
	}

	s.updateTable()
}

// updateTable rebuilds table rows from filtered items
func (s *ConfigScreen) updateTable() {
	rows := make([]table.Row, len(s.filtered))

	for i, item := range s.filtered {
		row := make(table.Row, len(s.visibleColumns))
		for j, col := range s.visibleColumns {
			val := getFieldValue(item, col.Field)

			if col.Format != nil {
				row[j] = col.Format(val)
			} else {
				row[j] = fmt.Sprint(val)
			}
		}
		rows[i] = row
	}

	s.table.SetRows(rows)

	// Ensure cursor is at a valid position
	if len(rows) > 0 {
		cursor := s.table.Cursor()
		if cursor < 0 || cursor >= len(rows) {
			s.table.SetCursor(0)
		}
	}
}

// ItemCount returns the number of rows currently shown, after filtering.
func (s *ConfigScreen) ItemCount() int {
	return len(s.filtered)
}

// SelectedItem returns the item under the cursor, or nil.
func (s *ConfigScreen) SelectedItem() any {
	cursor := s.table.Cursor()
	if cursor < 0 || cursor >= len(s.filtered) {
		return nil
	}
	return s.filtered[cursor]
}

// GetSelectedResource returns the currently selected resource as a map
func (s *ConfigScreen) GetSelectedResource() map[string]interface{} {
	item := s.SelectedItem()
	if item == nil {
		return nil
	}

	// Convert to map using reflection
	result := make(map[string]interface{})

	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Handle embedded structs
		if field.Anonymous && fieldValue.Kind() == reflect.Struct {
			embeddedType := fieldValue.Type()
			for j := 0; j < fieldValue.NumField(); j++ {
				embeddedFieldName := embeddedType.Field(j).Name
				embeddedFieldValue := fieldValue.Field(j).Interface()
				result[strings.ToLower(embeddedFieldName)] = embeddedFieldValue
			}
		} else {
			result[strings.ToLower(field.Name)] = fieldValue.Interface()
		}
	}

	return result
}

// handleEnterKey handles contextual navigation when Enter is pressed
func (s *ConfigScreen) handleEnterKey() tea.Cmd {
	if s.config.NavigationHandler != nil {
		return s.config.NavigationHandler(s)
	}
	return nil
}

// Helper functions

// getFieldValue extracts a field value from a struct using reflection.
// Supports dot notation for nested field access (e.g. "Workload.Name").
func getFieldValue(obj any, fieldName string) any {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	// Handle dot notation for nested fields
	if strings.Contains(fieldName, ".") {
		parts := strings.SplitN(fieldName, ".", 2)
		parentField := parts[0]
		childKey := parts[1]

		parent := v.FieldByName(parentField)
		if !parent.IsValid() {
			return ""
		}

		// If parent is a map, access the key
		if parent.Kind() == reflect.Map {
			mapValue := parent.MapIndex(reflect.ValueOf(childKey))
			if !mapValue.IsValid() {
				return ""
			}
			return mapValue.Interface()
		}

		// If parent is a struct, recurse
		if parent.Kind() == reflect.Struct {
			return getFieldValue(parent.Interface(), childKey)
		}

		return ""
	}

	// Direct field access for simple field names
	field := v.FieldByName(fieldName)
	if !field.IsValid() {
		return ""
	}

	return field.Interface()
}

// makeOperationHandler creates an Execute function for an operation
func (s *ConfigScreen) makeOperationHandler(op OperationConfig) func() tea.Cmd {
	return func() tea.Cmd {
		if op.Execute == nil {
			return nil
		}
		return op.Execute(s)
	}
}

// updateSelectedKey tracks the selected resource (for cursor restoration)
func (s *ConfigScreen) updateSelectedKey() {
	cursor := s.table.Cursor()
	if cursor >= 0 && cursor < len(s.filtered) {
		item := s.filtered[cursor]
		s.selectedKey = getResourceKey(item)
	}
}

// restoreCursorPosition restores cursor to previously selected resource
func (s *ConfigScreen) restoreCursorPosition() {
	if s.selectedKey == "" {
		return
	}

	for i, item := range s.filtered {
		if getResourceKey(item) == s.selectedKey {
			s.table.SetCursor(i)
			return
		}
	}
}

// getResourceKey generates a stable key for a resource: its ID when it
// has one, namespace/name otherwise.
func getResourceKey(item any) string {
	if id, ok := getFieldValue(item, "ID").(string); ok && id != "" {
		return id
	}
	namespace := fmt.Sprint(getFieldValue(item, "Namespace"))
	name := fmt.Sprint(getFieldValue(item, "Name"))
	return fmt.Sprintf("%s/%s", namespace, name)
}
