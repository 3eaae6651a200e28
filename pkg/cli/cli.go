package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tickit/pkg/commands"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	Verbose    bool

	// Account operations
	Login          bool
	Logout         bool
	Register       bool
	ForgotPassword string
	ResumeReset    bool
	User           string
	Email          string

	// Task operations
	AddTask      string
	Description  string
	DateFlag     string
	TimeFlag     string
	PriorityFlag string
	StatusFlag   string
	List         bool
	FilterFlag   string
	SearchFlag   string
	DeleteID     int64
	YesFlag      bool

	// Import/Export operations
	ImportFile string
	ExportFile string
	TypeFlag   string

	// Local state
	StateCmd string
	Theme    string
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs(argv []string, output io.Writer) (*Args, error) {
	args := &Args{}
	fs := flag.NewFlagSet("tickit", flag.ContinueOnError)
	fs.SetOutput(output)

	// Define command line flags
	fs.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	fs.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// Account operations
	fs.BoolVar(&args.Login, "login", false, "Sign in and store the session")
	fs.BoolVar(&args.Logout, "logout", false, "Forget the stored session")
	fs.BoolVar(&args.Register, "register", false, "Create an account (needs -user and -email)")
	fs.StringVar(&args.ForgotPassword, "forgot-password", "", "Reset the password of this email address")
	fs.BoolVar(&args.ResumeReset, "otp", false, "Continue an interrupted password reset")
	fs.StringVar(&args.User, "user", "", "Username for -login and -register")
	fs.StringVar(&args.Email, "email", "", "Email address for -register")

	// Task operations
	fs.StringVar(&args.AddTask, "add", "", "Add a new task")
	fs.StringVar(&args.Description, "desc", "", "Description for -add (defaults to the title)")
	fs.StringVar(&args.DateFlag, "date", "", "Due date for -add (YYYY-MM-DD, defaults to today)")
	fs.StringVar(&args.TimeFlag, "time", "", "Due time for -add (HH:MM)")
	fs.StringVar(&args.PriorityFlag, "priority", "", "Priority for -add (low, medium, high)")
	fs.StringVar(&args.StatusFlag, "status", "", "Status for -add (incomplete, ongoing, completed)")
	fs.BoolVar(&args.List, "list", false, "List tasks")
	fs.StringVar(&args.FilterFlag, "filter", "all", "Filter for -list (all, incomplete, ongoing, completed, upcoming, overdue)")
	fs.StringVar(&args.SearchFlag, "search", "", "Search term for -list")
	fs.Int64Var(&args.DeleteID, "delete", 0, "Delete the task with this ID")
	fs.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")

	// Import/Export operations
	fs.StringVar(&args.ImportFile, "import", "", "Import tasks from a txt file")
	fs.StringVar(&args.ExportFile, "export", "", "Export tasks to file")
	fs.StringVar(&args.TypeFlag, "type", "json", "Export file type ("+strings.Join(commands.ExportTypes, ", ")+")")

	// Local state
	fs.StringVar(&args.StateCmd, "state", "", "Local state command (list, purge)")
	fs.StringVar(&args.Theme, "theme", "", "Set the theme (dark, light, toggle) or show it (show)")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(output, err)
		return nil, err
	}
	return args, nil
}

// HandleCommands runs the CLI command the flags ask for.
// It reports false when no command was given and the TUI should start.
func HandleCommands(ctx context.Context, env *commands.Env, args *Args) (bool, error) {
	switch {
	case args.Login:
		return true, commands.HandleLogin(ctx, env, args.User)

	case args.Logout:
		return true, commands.HandleLogout(env)

	case args.Register:
		if args.User == "" || args.Email == "" {
			return true, fmt.Errorf("-register needs -user and -email")
		}
		return true, commands.HandleRegister(ctx, env, args.User, args.Email)

	case args.ForgotPassword != "":
		return true, commands.HandleForgotPassword(ctx, env, args.ForgotPassword)

	case args.ResumeReset:
		return true, commands.HandleResumeReset(ctx, env)

	case args.AddTask != "":
		return true, commands.HandleAddTask(ctx, env, args.AddTask, commands.AddOptions{
			Description: args.Description,
			Date:        args.DateFlag,
			Time:        args.TimeFlag,
			Priority:    args.PriorityFlag,
			Status:      args.StatusFlag,
		})

	case args.List:
		return true, commands.HandleListCommand(ctx, env, args.FilterFlag, args.SearchFlag)

	case args.DeleteID != 0:
		return true, commands.HandleDeleteCommand(ctx, env, args.DeleteID, args.YesFlag)

	case args.ImportFile != "":
		return true, commands.HandleImportCommand(ctx, env, args.ImportFile)

	case args.ExportFile != "":
		return true, commands.HandleExportCommand(ctx, env, args.ExportFile, args.TypeFlag)

	case args.StateCmd != "":
		return true, commands.HandleStateCommand(env, args.StateCmd, args.YesFlag)

	case args.Theme != "":
		value := args.Theme
		if value == "show" {
			value = ""
		}
		return true, commands.HandleThemeCommand(env, value)
	}

	// No CLI command was handled
	return false, nil
}
