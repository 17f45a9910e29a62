package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
)

// Command is one devtool subcommand. Run receives the arguments after the command name.
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry dispatches devtool subcommands by name
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd, replacing any command with the same name
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the commands ordered by name
func (r *Registry) List() []Command {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	cmds := make([]Command, len(names))
	for i, name := range names {
		cmds[i] = r.commands[name]
	}
	return cmds
}

// Execute runs the command named by args[0] and returns the process exit code
func (r *Registry) Execute(args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return 1
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		PrintError("Unknown command: %s", args[0])
		r.PrintHelp()
		return 1
	}
	if err := cmd.Run(args[1:]); err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		return 1
	}
	return 0
}

func (r *Registry) PrintHelp() {
	fmt.Fprintln(out, "Usage: devtool <command> [args...]")
	fmt.Fprintln(out, "\nCommands:")

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, cmd := range r.List() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	_ = tw.Flush()
}
