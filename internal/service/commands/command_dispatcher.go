package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/domain/ledger"
	"github.com/mamadbah2/canehaul/internal/domain/models"
	"github.com/mamadbah2/canehaul/internal/service/reporting"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// ErrEmployeeNotFound indicates no employee matches the requested name.
var ErrEmployeeNotFound = errors.New("employee not found")

// ErrAmbiguousName indicates several employees match the requested name.
var ErrAmbiguousName = errors.New("several employees match")

const (
	dateFormat  = "Jan 2, 2006"
	recentTrips = 5
)

// HelpText lists the supported commands.
const HelpText = "Commands:\n" +
	"/summary - this week's totals\n" +
	"/wage <name> - wage, driver pay and balance\n" +
	"/debt <name> - unpaid debts\n" +
	"/trips <name> - latest trips attended\n" +
	"/help - this list"

// ReportingAdapter defines the reporting functions required by the dispatcher.
type ReportingAdapter interface {
	Index(ctx context.Context) (*ledger.Index, error)
	WeeklySummary(ctx context.Context, now time.Time) (string, error)
}

// Dispatcher answers parsed commands.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	reporting ReportingAdapter
	logger    *zap.Logger
	now       func() time.Time
}

// NewService constructs a command dispatcher.
func NewService(reporting ReportingAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reporting: reporting,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleCommand computes the reply text for cmd.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandHelp:
		return HelpText, nil
	case models.CommandSummary:
		return s.reporting.WeeklySummary(ctx, s.now())
	case models.CommandWage, models.CommandDebt, models.CommandTrips:
		if cmd.Subject() == "" {
			return "", ErrInvalidArguments
		}
		idx, err := s.reporting.Index(ctx)
		if err != nil {
			return "", err
		}
		employee, err := findEmployee(idx.Snapshot().Employees, cmd.Subject())
		if err != nil {
			return "", err
		}
		switch cmd.Type {
		case models.CommandWage:
			return wageReply(idx, employee), nil
		case models.CommandDebt:
			return debtReply(idx, employee), nil
		default:
			return tripsReply(idx, employee), nil
		}
	default:
		return "", ErrUnsupportedCommand
	}
}

// ReplyForError turns a dispatch error into a message for the sender. The
// second result is false for errors that are not the sender's fault.
func ReplyForError(cmd models.Command, err error) (string, bool) {
	switch {
	case errors.Is(err, ErrUnsupportedCommand):
		return "Unknown command.\n" + HelpText, true
	case errors.Is(err, ErrInvalidArguments):
		return fmt.Sprintf("Please add a name, e.g. /%s juan", cmd.Type), true
	case errors.Is(err, ErrEmployeeNotFound), errors.Is(err, ErrAmbiguousName):
		return err.Error(), true
	}
	return "", false
}

func wageReply(idx *ledger.Index, employee models.Employee) string {
	summary := employeeSummary(idx, employee.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", employee.Name)
	fmt.Fprintf(&b, "Trips: %d | Tons: %s\n", summary.Trips, reporting.FormatTons(summary.Tons))
	fmt.Fprintf(&b, "Wage: %s\n", reporting.FormatPeso(summary.Wage))
	if summary.DriverTrips > 0 {
		fmt.Fprintf(&b, "Driver pay: %s (%d trips)\n", reporting.FormatPeso(summary.DriverPay), summary.DriverTrips)
	}
	fmt.Fprintf(&b, "Unpaid debt: %s\n", reporting.FormatPeso(summary.UnpaidDebt))
	fmt.Fprintf(&b, "Balance: %s", reporting.FormatPeso(summary.Balance))
	return b.String()
}

func debtReply(idx *ledger.Index, employee models.Employee) string {
	var unpaid []models.Debt
	for _, d := range ledger.EmployeeDebts(employee.ID, idx.Snapshot().Debts) {
		if !d.Paid {
			unpaid = append(unpaid, d)
		}
	}
	if len(unpaid) == 0 {
		return fmt.Sprintf("%s has no unpaid debts.", employee.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Unpaid debts of %s:", employee.Name)
	for _, d := range unpaid {
		line := reporting.FormatPeso(d.Amount)
		if d.Date != "" {
			line = d.Date + " " + line
		}
		if d.Description != "" {
			line += " " + d.Description
		}
		fmt.Fprintf(&b, "\n- %s", line)
	}
	fmt.Fprintf(&b, "\nTotal: %s", reporting.FormatPeso(ledger.UnpaidDebt(employee.ID, unpaid)))
	return b.String()
}

func tripsReply(idx *ledger.Index, employee models.Employee) string {
	travels := ledger.EmployeeTravels(employee.ID, "", idx.Snapshot().Travels)
	if len(travels) == 0 {
		return fmt.Sprintf("%s has no recorded trips.", employee.Name)
	}

	ledger.SortTravels(travels)
	if len(travels) > recentTrips {
		travels = travels[len(travels)-recentTrips:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Latest trips of %s:", employee.Name)
	for _, t := range travels {
		label := t.Name
		if d, ok := ledger.TravelDate(t.Name); ok {
			label = d.Format(dateFormat)
		}
		fmt.Fprintf(&b, "\n- %s %s %st %s", label, idx.GroupName(t.GroupID), reporting.FormatTons(t.Tons), reporting.FormatPeso(idx.Wage(t, employee.ID)))
	}
	return b.String()
}

func employeeSummary(idx *ledger.Index, employeeID string) ledger.EmployeeSummary {
	for _, s := range idx.EmployeeSummaries(idx.Snapshot().Travels) {
		if s.EmployeeID == employeeID {
			return s
		}
	}
	return ledger.EmployeeSummary{EmployeeID: employeeID}
}

// findEmployee matches name case-insensitively: an exact match wins,
// otherwise the name must prefix exactly one employee.
func findEmployee(employees []models.Employee, name string) (models.Employee, error) {
	wanted := strings.ToLower(strings.Join(strings.Fields(name), " "))

	var prefixed []models.Employee
	for _, e := range employees {
		candidate := strings.ToLower(strings.Join(strings.Fields(e.Name), " "))
		if candidate == wanted {
			return e, nil
		}
		if strings.HasPrefix(candidate, wanted) {
			prefixed = append(prefixed, e)
		}
	}

	switch len(prefixed) {
	case 0:
		return models.Employee{}, fmt.Errorf("%w: %q", ErrEmployeeNotFound, name)
	case 1:
		return prefixed[0], nil
	}

	names := make([]string, 0, len(prefixed))
	for _, e := range prefixed {
		names = append(names, e.Name)
	}
	return models.Employee{}, fmt.Errorf("%w %q: %s", ErrAmbiguousName, name, strings.Join(names, ", "))
}
