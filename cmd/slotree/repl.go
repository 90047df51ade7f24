package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/feather-lang/slot"
	"github.com/feather-lang/slot/internal/tree"
	"github.com/feather-lang/slot/internal/treefile"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errQuit = errors.New("quit")

const replHelp = `Commands (paths are child indices from the root, like 0/1; "." is the root):
  show [path]                 print the subtree at path
  add <path> <id> [label]     add a child under path
  set <path> <key> <value>    set an attribute on the slot at path
  get <path> <key>            print an attribute
  call <path> <method> [args] call a method (depth, path, scale, rename)
  move <from> <to>            move a subtree under another node
  copy <from> <to>            copy a subtree under another node
  hash <path>                 print the hash of the node at path
  len <path>                  print the number of children
  methods <path>              list the methods of the slot at path
  save <file>                 write the tree as TOML
  help                        show this help
  quit                        leave`

func newREPLCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [file]",
		Short: "Edit a tree interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := newEmptyTree()
			if len(args) == 1 {
				var err error
				if root, err = treefile.Open(args[0]); err != nil {
					return err
				}
			}
			sess := &session{root: root}
			if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return sess.runTerminal(f, a.cfg.REPL.Prompt)
			}
			return sess.run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newEmptyTree() *tree.Slot {
	root := slot.Make[tree.Node](nil, tree.With(0, "root"))
	tree.DefineBuiltins(root)
	return root
}

// session is an editing session on one tree.
type session struct {
	root *tree.Slot
}

// run executes one command per line of in until EOF or quit.
func (s *session) run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := s.exec(scanner.Text(), out); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(out, ErrorStyle.Render("error:")+" "+err.Error())
		}
	}
	return scanner.Err()
}

// runTerminal runs the session with line editing on a raw terminal.
func (s *session) runTerminal(f *os.File, prompt string) error {
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{f, os.Stdout}, prompt)
	if w, h, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(w, h)
	}
	for {
		line, err := t.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.exec(line, t); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(t, ErrorStyle.Render("error:")+" "+err.Error())
		}
	}
}

func (s *session) lookup(path string) (*tree.Slot, error) {
	return tree.Lookup(s.root, path)
}

func (s *session) node(path string) (*tree.Node, error) {
	sl, err := s.lookup(path)
	if err != nil {
		return nil, err
	}
	if !sl.Valid() {
		return nil, fmt.Errorf("%w: %q is empty", slot.ErrNullAccess, path)
	}
	return sl.Get(), nil
}

func wantArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("wrong # args: should be %q", usage)
	}
	return nil
}

// parseValue reads a command-line word as an int, float, bool or string.
func parseValue(word string) any {
	if i, err := strconv.Atoi(word); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(word); err == nil && (word == "true" || word == "false") {
		return b
	}
	return word
}

func (s *session) exec(line string, out io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(out, replHelp)
		return nil

	case "quit", "exit":
		return errQuit

	case "show":
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		sl, err := s.lookup(path)
		if err != nil {
			return err
		}
		return renderTree(out, sl, renderOptions{})

	case "add":
		if err := wantArgs(args, 2, "add path id ?label?"); err != nil {
			return err
		}
		parent, err := s.node(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("expected integer id but got %q", args[1])
		}
		child := parent.AddChild(tree.With(id, strings.Join(args[2:], " ")))
		tree.DefineBuiltins(child)
		fmt.Fprintf(out, "%s at %s\n", child, child.Get().Path())
		return nil

	case "set":
		if err := wantArgs(args, 3, "set path key value"); err != nil {
			return err
		}
		sl, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		return sl.Set(args[1], parseValue(strings.Join(args[2:], " ")))

	case "get":
		if err := wantArgs(args, 2, "get path key"); err != nil {
			return err
		}
		sl, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		b, err := sl.Lookup(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s)\n", b, b.Kind())
		return nil

	case "call":
		if err := wantArgs(args, 2, "call path method ?arg ...?"); err != nil {
			return err
		}
		sl, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		callArgs := make([]any, len(args)-2)
		for i, w := range args[2:] {
			callArgs[i] = parseValue(w)
		}
		r, err := sl.Invoke(args[1], callArgs...)
		if err != nil {
			return err
		}
		if r.HasValue() {
			fmt.Fprintln(out, r)
		}
		return nil

	case "move":
		if err := wantArgs(args, 2, "move from to"); err != nil {
			return err
		}
		return s.move(args[0], args[1], out)

	case "copy":
		if err := wantArgs(args, 2, "copy from to"); err != nil {
			return err
		}
		return s.copy(args[0], args[1], out)

	case "hash":
		if err := wantArgs(args, 1, "hash path"); err != nil {
			return err
		}
		sl, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%016x\n", sl.Hash())
		return nil

	case "len":
		if err := wantArgs(args, 1, "len path"); err != nil {
			return err
		}
		sl, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		n, err := sl.Len()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, n)
		return nil

	case "methods":
		if err := wantArgs(args, 1, "methods path"); err != nil {
			return err
		}
		sl, err := s.lookup(args[0])
		if err != nil {
			return err
		}
		for _, name := range sl.Methods() {
			m, _ := sl.Method(name)
			fmt.Fprintf(out, "%s %s\n", name, m.Signature())
		}
		return nil

	case "save":
		if err := wantArgs(args, 1, "save file"); err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := treefile.WriteTOML(f, treefile.Snapshot(s.root)); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	return fmt.Errorf("unknown command %q, try help", cmd)
}

// move detaches the subtree at from and inserts it as the last child of
// to. A move that would put a node under itself is refused and the subtree
// is put back where it was.
func (s *session) move(from, to string, out io.Writer) error {
	src, err := s.lookup(from)
	if err != nil {
		return err
	}
	parent := src.Parent()
	if parent == nil {
		return errors.New("cannot move the root")
	}
	dest, err := s.node(to)
	if err != nil {
		return err
	}
	n := src.Get()
	idx := parent.Index(n)
	detached := parent.Detach(idx)
	if !dest.Insert(dest.Len(), detached) {
		parent.Insert(idx, detached)
		fmt.Fprintln(out, WarningStyle.Render("refused:")+fmt.Sprintf(" %s cannot be moved under its own descendant %s", n, dest))
		return nil
	}
	moved := dest.Child(dest.Len() - 1)
	fmt.Fprintf(out, "%s at %s\n", moved, moved.Get().Path())
	return nil
}

// copy inserts a deep copy of the subtree at from as the last child of to.
// Attributes are not copied; methods are redefined on every copied slot.
func (s *session) copy(from, to string, out io.Writer) error {
	src, err := s.lookup(from)
	if err != nil {
		return err
	}
	dest, err := s.node(to)
	if err != nil {
		return err
	}
	cp, err := src.FullCopy()
	if err != nil {
		return err
	}
	if !dest.Insert(dest.Len(), cp) {
		return errors.New("copy refused")
	}
	copied := dest.Child(dest.Len() - 1)
	tree.Walk(copied, func(sl *tree.Slot, _ int) bool {
		tree.DefineBuiltins(sl)
		return true
	})
	fmt.Fprintf(out, "%s at %s\n", copied, copied.Get().Path())
	return nil
}
