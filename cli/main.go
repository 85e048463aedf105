package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	orderTable  table.Model
	weekDays    []WeekDay
	groups      []DeliveryGroup
	loginInput  textinput.Model
	spinner     spinner.Model
	client      *ApiClient
	currentView string
	status      string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "This Week", desc: "Browse the published menus for the week"},
		item{title: "Orders", desc: "View today's orders and advance their status"},
		item{title: "Delivery Run", desc: "View the run sheet and mark orders delivered"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "LunchLink CLI"

	columns := []table.Column{
		{Title: "Order", Width: 24},
		{Title: "Date", Width: 12},
		{Title: "Items", Width: 8},
		{Title: "Status", Width: 12},
	}
	orderTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	ti := textinput.New()
	ti.Placeholder = "username or email"
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 40

	return Model{
		mainMenu:    mainMenu,
		orderTable:  orderTable,
		loginInput:  ti,
		spinner:     s,
		client:      NewApiClient(),
		currentView: "login",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView != "login" {
				return m, tea.Quit
			}
		case "enter":
			switch m.currentView {
			case "login":
				identifier := strings.TrimSpace(m.loginInput.Value())
				if identifier == "" {
					m.error = "Enter a username or email"
					return m, nil
				}
				return m, doLogin(m.client, identifier)
			case "main":
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "This Week":
						m.currentView = "week"
						return m, fetchWeek(m.client)
					case "Orders":
						m.currentView = "orders"
						return m, fetchOrders(m.client)
					case "Delivery Run":
						m.currentView = "delivery"
						return m, fetchGroups(m.client)
					}
				}
			}
		case "esc":
			if m.currentView != "main" && m.currentView != "login" {
				m.currentView = "main"
				m.error = ""
				m.status = ""
			}
		case "c":
			// advance the selected order to confirmed
			if m.currentView == "orders" {
				if row := m.orderTable.SelectedRow(); row != nil {
					return m, advanceOrder(m.client, row[0], "confirmed")
				}
			}
		case "f":
			if m.currentView == "orders" {
				if row := m.orderTable.SelectedRow(); row != nil {
					return m, advanceOrder(m.client, row[0], "fulfilled")
				}
			}
		case "d":
			if m.currentView == "delivery" {
				return m, deliverAll(m.client, m.groups)
			}
		case "r":
			switch m.currentView {
			case "orders":
				return m, fetchOrders(m.client)
			case "delivery":
				return m, fetchGroups(m.client)
			case "week":
				return m, fetchWeek(m.client)
			}
		}
	case loginOKMsg:
		m.currentView = "main"
		m.error = ""
		return m, nil
	case weekMsg:
		m.weekDays = msg.days
		return m, nil
	case ordersMsg:
		m.orderTable.SetRows(ordersToRows(msg.orders))
		return m, nil
	case groupsMsg:
		m.groups = msg.groups
		return m, nil
	case statusMsg:
		m.status = msg.text
		m.error = ""
		switch m.currentView {
		case "orders":
			return m, fetchOrders(m.client)
		case "delivery":
			return m, fetchGroups(m.client)
		}
		return m, nil
	case errorMsg:
		m.error = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "login":
		m.loginInput, cmd = m.loginInput.Update(msg)
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "orders":
		m.orderTable, cmd = m.orderTable.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "login":
		view := titleStyle.Render("LunchLink Login") + "\n\n" + m.loginInput.View() + "\n"
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error) + "\n"
		}
		view += "\nPress 'enter' to log in, 'ctrl+c' to quit"
		return docStyle.Render(view)
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "week":
		return docStyle.Render(titleStyle.Render("This Week") + "\n\n" + weekView(m.weekDays) +
			"\nPress 'r' to refresh, 'esc' to go back")
	case "orders":
		help := "\nPress 'c' to confirm, 'f' to mark fulfilled, 'r' to refresh, 'esc' to go back\n"
		if m.status != "" {
			help += successStyle.Render(m.status) + "\n"
		}
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Orders") + "\n\n" + m.orderTable.View() + help)
	case "delivery":
		help := "\nPress 'd' to mark everything delivered, 'r' to refresh, 'esc' to go back\n"
		if m.status != "" {
			help += successStyle.Render(m.status) + "\n"
		}
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Delivery Run") + "\n\n" + groupsView(m.groups) + help)
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type loginOKMsg struct{}

type weekMsg struct {
	days []WeekDay
}

type ordersMsg struct {
	orders []Order
}

type groupsMsg struct {
	groups []DeliveryGroup
}

type statusMsg struct {
	text string
}

type errorMsg struct {
	err string
}

// doLogin authenticates against the API
func doLogin(client *ApiClient, identifier string) tea.Cmd {
	return func() tea.Msg {
		if err := client.Login(identifier); err != nil {
			return errorMsg{err: fmt.Sprintf("Login failed: %v", err)}
		}
		return loginOKMsg{}
	}
}

// fetchWeek retrieves the current week strip
func fetchWeek(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		days, err := client.GetWeek(0)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching week: %v", err)}
		}
		return weekMsg{days: days}
	}
}

// fetchOrders retrieves orders from the API
func fetchOrders(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.GetOrders()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching orders: %v", err)}
		}
		return ordersMsg{orders: orders}
	}
}

// fetchGroups retrieves the delivery run sheet
func fetchGroups(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		groups, err := client.GetDeliveryGroups()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching delivery groups: %v", err)}
		}
		return groupsMsg{groups: groups}
	}
}

// advanceOrder moves an order forward in its lifecycle
func advanceOrder(client *ApiClient, id, status string) tea.Cmd {
	return func() tea.Msg {
		if err := client.UpdateOrderStatus(id, status); err != nil {
			return errorMsg{err: fmt.Sprintf("Error updating order: %v", err)}
		}
		return statusMsg{text: fmt.Sprintf("Order marked %s", status)}
	}
}

// deliverAll marks every order on the run sheet delivered
func deliverAll(client *ApiClient, groups []DeliveryGroup) tea.Cmd {
	return func() tea.Msg {
		var ids []string
		for _, g := range groups {
			for _, o := range g.Orders {
				ids = append(ids, o.ID)
			}
		}
		if len(ids) == 0 {
			return errorMsg{err: "Nothing to deliver"}
		}
		n, err := client.DeliverOrders(ids)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error delivering orders: %v", err)}
		}
		return statusMsg{text: fmt.Sprintf("%d orders delivered", n)}
	}
}

// ordersToRows converts API orders to table rows
func ordersToRows(orders []Order) []table.Row {
	rows := make([]table.Row, len(orders))
	for i, order := range orders {
		rows[i] = table.Row{
			order.ID,
			order.MenuDate,
			fmt.Sprintf("%d", len(order.ItemIDs)),
			order.Status,
		}
	}
	return rows
}

// weekView renders the week strip with each day's dishes
func weekView(days []WeekDay) string {
	if len(days) == 0 {
		return "No data loaded yet. Press 'r' to refresh.\n"
	}
	var b strings.Builder
	for _, day := range days {
		marker := " "
		if day.OrderingClosed {
			marker = "×"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", marker, day.Date))
		if day.Menu == nil {
			b.WriteString("    (no menu published)\n")
			continue
		}
		for _, it := range day.Menu.Items {
			b.WriteString(fmt.Sprintf("    %-8s %s (%d kcal)\n", it.Category, it.Name, it.Calories))
		}
	}
	return b.String()
}

// groupsView renders the delivery run sheet
func groupsView(groups []DeliveryGroup) string {
	if len(groups) == 0 {
		return "No orders to deliver today.\n"
	}
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("%s (%d orders)\n", g.Label, len(g.Orders)))
		for _, o := range g.Orders {
			b.WriteString(fmt.Sprintf("    %s  %s  %d items\n", o.ID, o.Status, len(o.ItemIDs)))
		}
	}
	return b.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
