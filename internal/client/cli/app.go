// Package cli is the terminal front-end over the roster client layer. It is
// a two-state switch on session presence: until a login succeeds (or a
// persisted session restores), only login and exit are available.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/staffdesk/staffdesk/internal/client/directory"
	"github.com/staffdesk/staffdesk/internal/client/notify"
	"github.com/staffdesk/staffdesk/internal/client/roster"
	"github.com/staffdesk/staffdesk/internal/client/session"
)

type App struct {
	session *session.Store
	dir     directory.Service
	queue   *notify.Queue
	vm      *roster.ViewModel

	in  *bufio.Reader
	out io.Writer
}

func NewApp(store *session.Store, dir directory.Service, queue *notify.Queue) *App {
	return &App{
		session: store,
		dir:     dir,
		queue:   queue,
		vm:      roster.NewViewModel(dir, queue),
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run restores the persisted session and enters the command loop.
func (a *App) Run(ctx context.Context) {
	a.session.Restore()
	if _, ok := a.session.Token(); ok {
		fmt.Fprintln(a.out, "Session restored.")
		a.vm.Refresh(ctx)
		a.flush()
	}

	fmt.Fprintln(a.out, `Staffdesk roster client. Type "help" for commands.`)
	for {
		prompt := "staffdesk> "
		if _, ok := a.session.Token(); !ok {
			prompt = "staffdesk (logged out)> "
		}

		line, err := promptLine(a.in, a.out, prompt)
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]

		switch command {
		case "help":
			a.printHelp()
		case "login":
			a.login(ctx)
		case "logout":
			a.session.Logout()
			fmt.Fprintln(a.out, "Logged out.")
		case "list":
			a.vm.Refresh(ctx)
			a.printEmployees(a.vm.Employees())
		case "search":
			a.printEmployees(a.vm.Search(strings.Join(args, " ")))
		case "add":
			a.submitForm(ctx, directory.Employee{}, false)
		case "edit":
			a.edit(ctx, args)
		case "delete":
			a.remove(ctx, args)
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type \"help\" for commands.\n", command)
		}
		a.flush()
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, `Commands:
  login              authenticate as the admin user
  logout             drop the current session
  list               fetch and show the roster
  search <term>      filter the cached roster
  add                add an employee
  edit <id>          edit an employee
  delete <id>        delete an employee (asks for confirmation)
  exit | quit        leave`)
}

func (a *App) login(ctx context.Context) {
	username, err := promptLine(a.in, a.out, "Username: ")
	if err != nil {
		return
	}
	password, err := promptPassword(a.in, a.out)
	if err != nil {
		return
	}

	token, err := a.dir.Authenticate(ctx, username, password)
	if err != nil {
		a.queue.Error(err.Error())
		return
	}
	a.session.Login(token)
	a.queue.Success("Logged in.")
	a.vm.Refresh(ctx)
}

func (a *App) edit(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return
	}
	for _, emp := range a.vm.Employees() {
		if emp.ID == args[0] {
			a.submitForm(ctx, emp, true)
			return
		}
	}
	fmt.Fprintln(a.out, "No such employee in the current roster. Run \"list\" first.")
}

// submitForm runs the add/edit flow: open, prompt, submit. A failed submit
// keeps the form open with the entered values; the user decides whether to
// retry or cancel.
func (a *App) submitForm(ctx context.Context, initial directory.Employee, editing bool) {
	if editing {
		a.vm.OpenEdit(initial)
	} else {
		a.vm.OpenCreate()
	}

	_, data := a.vm.Form()
	for {
		var err error
		if data.Name, err = promptField(a.in, a.out, "Name", data.Name); err != nil {
			a.vm.CancelForm()
			return
		}
		if data.Email, err = promptField(a.in, a.out, "Email", data.Email); err != nil {
			a.vm.CancelForm()
			return
		}
		if data.Position, err = promptField(a.in, a.out, "Position", data.Position); err != nil {
			a.vm.CancelForm()
			return
		}
		if data.Department, err = promptField(a.in, a.out, "Department", data.Department); err != nil {
			a.vm.CancelForm()
			return
		}

		a.vm.Submit(ctx, data)

		mode, kept := a.vm.Form()
		if mode == roster.FormClosed {
			return
		}

		a.flush()
		retry, err := promptLine(a.in, a.out, "Submit failed, your input was kept. Retry? [y/N]: ")
		if err != nil || !strings.EqualFold(retry, "y") {
			a.vm.CancelForm()
			return
		}
		data = kept
	}
}

func (a *App) remove(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return
	}

	for _, emp := range a.vm.Employees() {
		if emp.ID == args[0] {
			a.vm.RequestRemove(emp)
			break
		}
	}
	target, ok := a.vm.PendingRemoval()
	if !ok {
		fmt.Fprintln(a.out, "No such employee in the current roster. Run \"list\" first.")
		return
	}

	answer, err := promptLine(a.in, a.out, fmt.Sprintf("Delete %s? [y/N]: ", target.Name))
	if err != nil || !strings.EqualFold(answer, "y") {
		a.vm.CancelRemove()
		return
	}
	a.vm.ConfirmRemove(ctx)
}

func (a *App) printEmployees(employees []directory.Employee) {
	if len(employees) == 0 {
		fmt.Fprintln(a.out, "No employees found.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPOSITION\tDEPARTMENT")
	for _, emp := range employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", emp.ID, emp.Name, emp.Email, emp.Position, emp.Department)
	}
	tw.Flush()
}

// flush prints and clears queued notifications. A line-oriented UI shows
// outcomes immediately instead of letting the auto-dismiss timers fire.
func (a *App) flush() {
	for _, n := range a.queue.Drain() {
		fmt.Fprintf(a.out, "[%s] %s\n", n.Kind, n.Text)
	}
}
