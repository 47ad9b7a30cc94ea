package dashboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dkoosis/regdash/pkg/registry"
	"github.com/dkoosis/regdash/pkg/render"
)

const consoleHelp = `commands:
  add <title> [| description [| expected]]   (write \| for a literal |)
  pass <ref>    mark pass
  fail <ref>    mark fail
  reset <ref>   back to pending
  rm <ref>      remove
  filter all|pending|pass|fail
  list          show the current view
  stats         show totals
  export text|markdown|json
  help
  quit
<ref> is a 1-based position in the current view or a full record ID.`

// console drives a registry from line commands when there is no terminal.
type console struct {
	reg    *registry.Registry
	out    io.Writer
	filter registry.Filter
	now    func() time.Time
}

// RunNonTTY reads commands from in until EOF, quit, or ctx is cancelled.
// Command output goes to out.
//
// Lines are read on a separate goroutine. When RunNonTTY returns before in
// reaches EOF, that goroutine stays blocked in Read until in yields data or
// is closed; callers that keep running should close in themselves.
func RunNonTTY(ctx context.Context, reg *registry.Registry, in io.Reader, out io.Writer, opts Options) error {
	c := &console{
		reg:    reg,
		out:    out,
		filter: opts.Filter,
		now:    time.Now,
	}
	log := opts.logger()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(in)
		defer func() {
			scanErr <- scanner.Err()
			close(lines)
		}()
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	fmt.Fprintf(out, "regdash console (%d tests). Type help for commands.\n", reg.Len())
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("reading commands: %w", err)
				}
				return nil
			}
			quit, err := c.exec(line)
			if err != nil {
				log.Error("console command failed", "line", line, "error", err)
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// exec runs one command line. It reports whether the session should end.
func (c *console) exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "add", "new":
		return false, c.add(arg)
	case "pass":
		c.setStatus(arg, registry.StatusPass)
	case "fail":
		c.setStatus(arg, registry.StatusFail)
	case "reset", "pending":
		c.setStatus(arg, registry.StatusPending)
	case "rm", "remove", "delete":
		if rec, ok := c.resolve(arg); ok {
			c.reg.Remove(rec.ID)
			fmt.Fprintf(c.out, "removed %s\n", rec.Title)
		}
	case "filter":
		f, err := registry.ParseFilter(arg)
		if err != nil {
			return false, err
		}
		c.filter = f
		fmt.Fprintf(c.out, "filter: %s\n", f)
	case "list", "ls":
		return false, c.export(render.FormatText)
	case "stats":
		s := c.reg.Stats()
		fmt.Fprintf(c.out, "total %d · pending %d · pass %d · fail %d\n", s.Total, s.Pending, s.Pass, s.Fail)
	case "export":
		format, err := render.ParseFormat(arg)
		if err != nil {
			return false, err
		}
		return false, c.export(format)
	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
	case "quit", "exit", "q":
		return true, nil
	default:
		fmt.Fprintf(c.out, "unknown command %q (try help)\n", cmd)
	}
	return false, nil
}

func (c *console) add(arg string) error {
	parts := splitFields(arg, 3)
	rec, err := c.reg.Add(parts[0], parts[1], parts[2])
	if errors.Is(err, registry.ErrEmptyTitle) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added %s\n", rec.Title)
	return nil
}

func (c *console) setStatus(ref string, status registry.Status) {
	rec, ok := c.resolve(ref)
	if !ok {
		return
	}
	c.reg.UpdateStatus(rec.ID, status)
	fmt.Fprintf(c.out, "%s: %s\n", status, rec.Title)
}

// resolve maps a 1-based view position or a record ID to a record.
func (c *console) resolve(ref string) (registry.Record, bool) {
	if ref == "" {
		return registry.Record{}, false
	}
	if n, err := strconv.Atoi(ref); err == nil {
		view := c.reg.FilteredView(c.filter)
		if n < 1 || n > len(view) {
			return registry.Record{}, false
		}
		return view[n-1], true
	}
	return c.reg.Get(ref)
}

func (c *console) export(format render.Format) error {
	return render.Write(c.out, format, render.Capture(c.reg, c.filter, c.now()))
}

// splitFields splits s on unescaped '|' into exactly n trimmed fields. The
// last field keeps any further separators. "\|" stands for a literal '|'.
func splitFields(s string, n int) []string {
	fields := make([]string, 0, n)
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '|':
			cur.WriteByte('|')
			i++
		case s[i] == '|' && len(fields) < n-1:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	for len(fields) < n {
		fields = append(fields, "")
	}
	return fields
}
