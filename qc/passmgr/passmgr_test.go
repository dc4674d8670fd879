package passmgr

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/kegliz/qcore/qc/cerr"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePass struct {
	typeName string
	compiled *int
}

func (p *fakePass) TypeName() string { return p.typeName }

func (p *fakePass) DeclareOptions() *OptionSet {
	return NewOptionSet().Add(NewIntOption("x", "test option", 0))
}

func (p *fakePass) DumpDocs(w io.Writer, linePrefix string) {
	io.WriteString(w, linePrefix+"fake pass\n")
}

func (p *fakePass) OnConstruct(factory *Factory, node *Node) (GroupFlag, error) {
	return NotGroup, nil
}

func (p *fakePass) OnCompile(program *ir.Program, ctx *Context) error {
	if p.compiled != nil {
		*p.compiled++
	}
	return nil
}

func fakeFactory() *Factory {
	f := NewFactory()
	f.Register("testpass", func(typeName, instanceName string) (Pass, error) {
		return &fakePass{typeName: typeName}, nil
	})
	return f
}

// TestStrategy_S6 mirrors spec scenario S6.
func TestStrategy_S6(t *testing.T) {
	raw := []byte(`{
		"strategy": {
			"pass-options": {"x": 2},
			"passes": [
				{"type": "testpass", "name": "A"},
				{"type": "testpass", "name": "B", "options": {"x": 5}}
			]
		}
	}`)

	root, err := BuildFromJSON(extractStrategy(t, raw), fakeFactory())
	require.NoError(t, err)
	require.NoError(t, root.Construct())

	a, err := root.GetOption("A.x")
	require.NoError(t, err)
	assert.Equal(t, "2", a)

	b, err := root.GetOption("B.x")
	require.NoError(t, err)
	assert.Equal(t, "5", b)
}

func extractStrategy(t *testing.T, full []byte) []byte {
	t.Helper()
	var outer struct {
		Strategy json.RawMessage `json:"strategy"`
	}
	require.NoError(t, json.Unmarshal(full, &outer))
	return outer.Strategy
}

// TestConstruct_Idempotent mirrors spec §8 invariant 11.
func TestConstruct_Idempotent(t *testing.T) {
	root := NewRoot(fakeFactory())
	_, err := root.AppendSubPass("testpass", "p", nil)
	require.NoError(t, err)

	require.NoError(t, root.Construct())
	require.NoError(t, root.Construct())
	require.NoError(t, root.Construct())
}

// TestSetOption_AfterConstructFails mirrors the other half of spec §8
// invariant 11: setting an option after construct() is an error, not a
// silent no-op.
func TestSetOption_AfterConstructFails(t *testing.T) {
	root := NewRoot(fakeFactory())
	_, err := root.AppendSubPass("testpass", "p", nil)
	require.NoError(t, err)
	require.NoError(t, root.Construct())

	_, err = root.SetOption("p.x", "7", false)
	assert.ErrorIs(t, err, cerr.ErrAlreadyConstructed)
}

// TestAppendSubPass_RejectsNonGroup and TestAppendSubPass_GroupStaysOpenAfterConstruct
// mirror spec §3/§4.3: sub-passes may only be appended to a group, and
// group membership stays open after construct().
func TestAppendSubPass_RejectsNonGroup(t *testing.T) {
	root := NewRoot(fakeFactory())
	leaf, err := root.AppendSubPass("testpass", "p", nil)
	require.NoError(t, err)

	_, err = leaf.AppendSubPass("testpass", "q", nil)
	assert.ErrorIs(t, err, cerr.ErrPassNotGroup)
}

func TestAppendSubPass_GroupStaysOpenAfterConstruct(t *testing.T) {
	root := NewRoot(fakeFactory())
	require.NoError(t, root.Construct())

	late, err := root.AppendSubPass("testpass", "late", nil)
	require.NoError(t, err)

	counter := 0
	late.impl = &fakePass{typeName: "testpass", compiled: &counter}
	require.NoError(t, root.Compile(ir.NewProgram("p"), &Context{}))
	assert.Equal(t, 1, counter)
}

func TestSetOption_Wildcards(t *testing.T) {
	root := NewRoot(fakeFactory())
	g, err := root.AppendSubPass("", "grp", nil)
	require.NoError(t, err)
	_, err = g.AppendSubPass("testpass", "p1", nil)
	require.NoError(t, err)
	_, err = g.AppendSubPass("testpass", "p2", nil)
	require.NoError(t, err)
	_, err = root.AppendSubPass("testpass", "q1", nil)
	require.NoError(t, err)

	count, err := root.SetOption("grp.p*.x", "7", true)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	v, err := root.GetOption("grp.p1.x")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	count, err = root.SetOption("**.x", "9", true)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSetOption_MustExistFails(t *testing.T) {
	root := NewRoot(fakeFactory())
	_, err := root.AppendSubPass("testpass", "p", nil)
	require.NoError(t, err)

	_, err = root.SetOption("missing.x", "1", true)
	assert.ErrorIs(t, err, cerr.ErrOptionPathNotFound)
}

func TestCompile_PreOrder(t *testing.T) {
	root := NewRoot(fakeFactory())
	counter := 0
	for _, name := range []string{"first", "second"} {
		g, err := root.AppendSubPass("testpass", name, nil)
		require.NoError(t, err)
		g.impl = &fakePass{typeName: "testpass", compiled: &counter}
	}

	program := ir.NewProgram("p")
	require.NoError(t, root.Compile(program, &Context{}))
	assert.Equal(t, 2, counter)
}

func TestDuplicateInstanceName(t *testing.T) {
	root := NewRoot(fakeFactory())
	_, err := root.AppendSubPass("testpass", "dup", nil)
	require.NoError(t, err)
	_, err = root.AppendSubPass("testpass", "dup", nil)
	assert.ErrorIs(t, err, cerr.ErrDuplicateInstance)
}

func TestFactory_ConfigureDNU(t *testing.T) {
	f := NewFactory()
	f.Register("dnu.experimental", func(t, i string) (Pass, error) { return &fakePass{typeName: t}, nil })
	f.Register("stable", func(t, i string) (Pass, error) { return &fakePass{typeName: t}, nil })

	hidden := f.Configure("", nil)
	_, err := hidden.Build("experimental", "x")
	assert.ErrorIs(t, err, cerr.ErrUnknownPassType)

	opted := f.Configure("", map[string]bool{"dnu.experimental": true})
	_, err = opted.Build("experimental", "x")
	assert.NoError(t, err)
}
