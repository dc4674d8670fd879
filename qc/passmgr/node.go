package passmgr

import (
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/kegliz/qcore/qc/cerr"
	"github.com/kegliz/qcore/qc/ir"
)

var instanceNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// Node is one pass in the tree: either a generic group (impl == nil),
// a constructed leaf, or a leaf that expanded into a group at
// construct time. Mirrors the teacher-adjacent PassGroup/PassFactory
// split from pass_manager.h, collapsed into one type the way a Go
// tree node usually holds its own child slice.
type Node struct {
	factory       *Factory
	typeName      string
	instanceName  string
	impl          Pass
	options       *OptionSet
	groupOptions  map[string]string
	parent        *Node
	children      []*Node
	childrenByID  map[string]int
	constructed   bool
	isGroup       bool
	autoNameNext  int
}

// NewRoot returns the empty-named root group of a fresh pass tree.
func NewRoot(factory *Factory) *Node {
	return &Node{
		factory:      factory,
		options:      NewOptionSet(),
		groupOptions: map[string]string{},
		isGroup:      true,
		childrenByID: map[string]int{},
	}
}

func (n *Node) TypeName() string     { return n.typeName }
func (n *Node) InstanceName() string { return n.instanceName }
func (n *Node) IsGroup() bool        { return n.isGroup }
func (n *Node) IsConstructed() bool  { return n.constructed }
func (n *Node) Children() []*Node    { return append([]*Node(nil), n.children...) }

// AppendSubPass builds and appends a new child pass. An empty
// typeName makes a generic subgroup. options are applied immediately
// after the child's own declared defaults. Sub-passes may only be
// appended to a group; unlike option freezing, group membership stays
// open after construct() (spec §3/§4.3), so n.constructed is not
// checked here.
func (n *Node) AppendSubPass(typeName, instanceName string, options map[string]string) (*Node, error) {
	if !n.isGroup {
		return nil, cerr.Context(cerr.ErrPassNotGroup, n.path(), "cannot append sub-pass to a non-group")
	}

	child := &Node{
		factory:      n.factory,
		typeName:     typeName,
		parent:       n,
		options:      NewOptionSet(),
		groupOptions: map[string]string{},
		childrenByID: map[string]int{},
	}

	if typeName == "" {
		child.isGroup = true
	} else {
		impl, err := n.factory.Build(typeName, instanceName)
		if err != nil {
			return nil, err
		}
		child.impl = impl
		child.options = impl.DeclareOptions()
		if child.options == nil {
			child.options = NewOptionSet()
		}
	}

	if instanceName == "" {
		instanceName = n.generateInstanceName(typeName)
	} else if !instanceNamePattern.MatchString(instanceName) {
		return nil, cerr.Context(cerr.ErrInvalidInstanceName, n.path(), instanceName)
	}
	if _, exists := n.childrenByID[instanceName]; exists {
		return nil, cerr.Context(cerr.ErrDuplicateInstance, n.path(), instanceName)
	}
	child.instanceName = instanceName

	for k, v := range options {
		if opt, ok := child.options.Get(k); ok {
			if err := opt.Set(v); err != nil {
				return nil, cerr.Context(err, child.path(), k)
			}
		}
	}

	n.childrenByID[instanceName] = len(n.children)
	n.children = append(n.children, child)
	return child, nil
}

func (n *Node) generateInstanceName(typeName string) string {
	base := typeName
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		base = base[idx+1:]
	}
	if base == "" {
		base = "group"
	}
	for {
		n.autoNameNext++
		candidate := base + strconv.Itoa(n.autoNameNext)
		if _, exists := n.childrenByID[candidate]; !exists {
			return candidate
		}
	}
}

// path returns this node's dotted instance path, for error context.
func (n *Node) path() string {
	if n.parent == nil {
		return "<root>"
	}
	parentPath := n.parent.path()
	if parentPath == "<root>" {
		return n.instanceName
	}
	return parentPath + "." + n.instanceName
}

// GetPass resolves a dotted instance path (no wildcards) to a node.
func (n *Node) GetPass(target string) (*Node, error) {
	if target == "" {
		return n, nil
	}
	comps := strings.Split(target, ".")
	cur := n
	for _, c := range comps {
		idx, ok := cur.childrenByID[c]
		if !ok {
			return nil, cerr.Context(cerr.ErrPathNotFound, n.path(), target)
		}
		cur = cur.children[idx]
	}
	return cur, nil
}

// DoesPassExist reports whether target resolves to a node.
func (n *Node) DoesPassExist(target string) bool {
	_, err := n.GetPass(target)
	return err == nil
}

// GetNumPasses returns the number of passes in the subtree (excluding
// n itself).
func (n *Node) GetNumPasses() int {
	total := len(n.children)
	for _, c := range n.children {
		total += c.GetNumPasses()
	}
	return total
}

// resolveOption walks up the enclosing groups' group-options when the
// option isn't set locally, per spec §4.3's resolution order: local >
// enclosing group-options (innermost first) > hardcoded default.
func (n *Node) resolveOption(name string) (string, bool) {
	if opt, ok := n.options.Get(name); ok && opt.IsSet() {
		return opt.AsStr(), true
	}
	for anc := n.parent; anc != nil; anc = anc.parent {
		if v, ok := anc.groupOptions[name]; ok {
			return v, true
		}
	}
	if opt, ok := n.options.Get(name); ok {
		return opt.Default(), true
	}
	return "", false
}

// GetOption returns the resolved value of the option at path
// (`<instance-path>.<opt-name>`, no wildcards).
func (n *Node) GetOption(optPath string) (string, error) {
	comps := strings.Split(optPath, ".")
	if len(comps) == 0 {
		return "", cerr.Context(cerr.ErrOptionPathNotFound, n.path(), optPath)
	}
	optName := comps[len(comps)-1]
	target, err := n.GetPass(strings.Join(comps[:len(comps)-1], "."))
	if err != nil {
		return "", err
	}
	if !target.options.Has(optName) {
		return "", cerr.Context(cerr.ErrOptionPathNotFound, target.path(), optName)
	}
	v, _ := target.resolveOption(optName)
	return v, nil
}

// SetOption sets an option addressed by a dotted path with optional
// `?`/`*` glob wildcards in the pass-name components, and `**` as the
// sole component immediately before the option name to recurse the
// entire subtree (spec §4.3's addressing rules). Returns the number of
// passes actually affected (i.e. that both matched and declare the
// option). If mustExist and the count is 0, returns
// ErrOptionPathNotFound.
func (n *Node) SetOption(optPath, value string, mustExist bool) (int, error) {
	comps := strings.Split(optPath, ".")
	optName := comps[len(comps)-1]
	pathComps := comps[:len(comps)-1]

	count, err := n.resolveSet(pathComps, optName, value)
	if err != nil {
		return count, err
	}
	if mustExist && count == 0 {
		return 0, cerr.Context(cerr.ErrOptionPathNotFound, n.path(), optPath)
	}
	return count, nil
}

func (n *Node) resolveSet(comps []string, optName, value string) (int, error) {
	if len(comps) == 0 {
		return n.trySet(optName, value)
	}
	head, rest := comps[0], comps[1:]
	if head == "**" && len(rest) == 0 {
		return n.setRecursively(optName, value)
	}
	total := 0
	for _, c := range n.children {
		matched, err := path.Match(head, c.instanceName)
		if err != nil {
			return total, cerr.Context(cerr.ErrOptionPathNotFound, n.path(), head)
		}
		if !matched {
			continue
		}
		sub, err := c.resolveSet(rest, optName, value)
		if err != nil {
			return total, err
		}
		total += sub
	}
	return total, nil
}

// SetOptionRecursively sets optName on every pass in the subtree
// (including n) that declares it.
func (n *Node) SetOptionRecursively(optName, value string) (int, error) {
	return n.setRecursively(optName, value)
}

func (n *Node) setRecursively(optName, value string) (int, error) {
	total, err := n.trySet(optName, value)
	if err != nil {
		return total, err
	}
	for _, c := range n.children {
		sub, err := c.setRecursively(optName, value)
		if err != nil {
			return total, err
		}
		total += sub
	}
	return total, nil
}

func (n *Node) trySet(optName, value string) (int, error) {
	opt, ok := n.options.Get(optName)
	if !ok {
		return 0, nil
	}
	if n.constructed {
		return 0, cerr.Context(cerr.ErrAlreadyConstructed, n.path(), optName)
	}
	if err := opt.Set(value); err != nil {
		return 0, cerr.Context(err, n.path(), optName)
	}
	return 1, nil
}

// SetGroupOption records a group-options value propagated to this
// node's descendants (spec §4.3), without touching any child's own
// local option state.
func (n *Node) SetGroupOption(name, value string) {
	n.groupOptions[name] = value
}

// Construct freezes this node's options and, for a leaf, lets it
// decide whether it expands into a group; idempotent per spec §8
// invariant 11. A repeat call still walks the children, since a group
// may have gained new sub-passes via AppendSubPass after its own first
// construct() — each child's own Construct() call stays idempotent.
func (n *Node) Construct() error {
	if !n.constructed {
		n.constructed = true

		if n.impl != nil {
			flag, err := n.impl.OnConstruct(n.factory, n)
			if err != nil {
				return cerr.Context(err, n.path(), "construct")
			}
			if flag == IsGroup {
				n.isGroup = true
			}
		}
	}

	for _, c := range n.children {
		if err := c.Construct(); err != nil {
			return err
		}
	}
	return nil
}

// Compile constructs the whole subtree (if not already constructed)
// then runs every leaf's OnCompile in pre-order, per spec §4.3's
// "compile(ir) calls construct() ... then executes the tree in
// pre-order."
func (n *Node) Compile(program *ir.Program, ctx *Context) error {
	if err := n.Construct(); err != nil {
		return err
	}
	return n.compileSubtree(program, ctx)
}

func (n *Node) compileSubtree(program *ir.Program, ctx *Context) error {
	if n.impl != nil {
		if err := n.impl.OnCompile(program, ctx); err != nil {
			return cerr.Context(err, n.path(), "compile")
		}
	}
	for _, c := range n.children {
		if err := c.compileSubtree(program, ctx); err != nil {
			return err
		}
	}
	return nil
}

// DumpStrategy writes the configured pass tree, one line per pass,
// indented by depth.
func (n *Node) DumpStrategy(w io.Writer, linePrefix string) {
	for _, c := range n.children {
		label := c.instanceName
		if c.typeName != "" {
			label = fmt.Sprintf("%s (%s)", c.instanceName, c.typeName)
		}
		fmt.Fprintf(w, "%s%s\n", linePrefix, label)
		c.DumpStrategy(w, linePrefix+"  ")
	}
}

// DumpDocs writes documentation for this node's options (if a leaf)
// and recurses into children.
func (n *Node) DumpDocs(w io.Writer, linePrefix string) {
	if n.impl != nil {
		fmt.Fprintf(w, "%s### %s (%s)\n", linePrefix, n.instanceName, n.typeName)
		n.impl.DumpDocs(w, linePrefix)
		n.options.DumpHelp(w, linePrefix+"  ")
	}
	for _, c := range n.children {
		c.DumpDocs(w, linePrefix)
	}
}
