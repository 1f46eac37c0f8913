package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebase-genius/ccg/internal/extract"
)

// twoFileRecords is the canonical two-module python scenario: app.py declares
// run_server and Server, models.py declares init_app and App.
func twoFileRecords() []extract.Record {
	appSrc := "from models import init_app\n\n\ndef run_server():\n    app = init_app()\n    app.serve()\n\n\nclass Server:\n    def stop(self):\n        pass\n"
	modelsSrc := "def init_app():\n    return App()\n\n\nclass App:\n    def serve(self):\n        pass\n"

	return []extract.Record{
		&extract.PythonRecord{
			FilePath: "app.py",
			Funcs:    []string{"run_server", "stop"},
			Classes:  []string{"Server"},
			Source:   appSrc,
		},
		&extract.PythonRecord{
			FilePath: "models.py",
			Funcs:    []string{"init_app", "serve"},
			Classes:  []string{"App"},
			Source:   modelsSrc,
		},
	}
}

func TestEntityID(t *testing.T) {
	assert.Equal(t, "app.py::run_server", EntityID("app.py", KindFunction, "run_server"))
	assert.Equal(t, "app.py::Server", EntityID("app.py", KindClass, "Server"))
	// Jac kinds share a namespace per file, so their ids carry the kind.
	assert.Equal(t, "g.jac::walker:CodeGuide", EntityID("g.jac", KindWalker, "CodeGuide"))
	assert.Equal(t, "g.jac::node:Repository", EntityID("g.jac", KindNode, "Repository"))
	assert.Equal(t, "g.jac::ability:summarize", EntityID("g.jac", KindAbility, "summarize"))
}

func TestAssembleNodes(t *testing.T) {
	g := Assemble(twoFileRecords())

	assert.Equal(t, []string{"app.py", "models.py"}, g.Files())
	assert.Equal(t, []string{"app.py::run_server", "app.py::stop", "app.py::Server"}, g.FileEntities("app.py"))
	assert.Equal(t, []string{"models.py::init_app", "models.py::serve", "models.py::App"}, g.FileEntities("models.py"))

	ent, ok := g.Entity("models.py::init_app")
	require.True(t, ok)
	assert.Equal(t, "init_app", ent.Name)
	assert.Equal(t, KindFunction, ent.Kind)
	assert.Equal(t, extract.LangPython, ent.Language)
	assert.Equal(t, "models.py", ent.FilePath)
}

// The substring heuristic points references AT the entity whose name appears
// in its own file: scanning models.py finds "init_app" in the text, so every
// entity declared elsewhere gets an edge to models.py::init_app.
func TestAssembleEdgeDirection(t *testing.T) {
	g := Assemble(twoFileRecords())

	assert.Contains(t, g.Callees("app.py::run_server"), "models.py::init_app")
	assert.Contains(t, g.Callers("models.py::init_app"), "app.py::run_server")

	// The reverse pair also exists here because scanning app.py matches
	// "run_server" in its own text.
	assert.Contains(t, g.Callees("models.py::init_app"), "app.py::run_server")

	snap := g.Snapshot()
	assert.Equal(t, EdgeTypeCalls, snap.EdgeTypes["app.py::run_server->models.py::init_app"])
}

func TestAssembleNameLengthFloor(t *testing.T) {
	g := Assemble(twoFileRecords())

	// "App" is three characters, at the floor, so it never receives edges.
	assert.Empty(t, g.Callers("models.py::App"))
	// "serve" clears the floor and appears in models.py, so it does.
	assert.NotEmpty(t, g.Callers("models.py::serve"))
}

// Four characters is the shortest name that participates in resolution.
func TestAssembleNameLengthFloorBoundary(t *testing.T) {
	records := []extract.Record{
		&extract.PythonRecord{
			FilePath: "a.py",
			Funcs:    []string{"abcd"},
			Source:   "def abcd():\n    pass\n",
		},
		&extract.PythonRecord{
			FilePath: "b.py",
			Funcs:    []string{"abc"},
			Source:   "def abc():\n    pass\n",
		},
	}

	g := Assemble(records)

	assert.Equal(t, []string{"b.py::abc"}, g.Callers("a.py::abcd"))
	assert.Empty(t, g.Callers("b.py::abc"))
}

func TestAssembleSkipsInertRecords(t *testing.T) {
	records := append(twoFileRecords(),
		&extract.ErrorRecord{FilePath: "bad.bin", Message: "unreadable"},
		&extract.PythonRecord{
			FilePath: "broken.py",
			Source:   "def broken(:\n    run_server()\n",
			ParseErr: "syntax error in broken.py",
		},
	)

	g := Assemble(records)

	// Neither inert record contributes nodes.
	assert.Empty(t, g.FileEntities("bad.bin"))
	assert.Empty(t, g.FileEntities("broken.py"))
	assert.Equal(t, []string{"app.py", "models.py"}, g.Files())

	// Nor does the failed parse participate in reference resolution, even
	// though its text mentions run_server.
	for _, caller := range g.Callers("app.py::run_server") {
		ent, _ := g.Entity(caller)
		assert.NotEqual(t, "broken.py", ent.FilePath)
	}
}

func TestAssembleSingleFileHasNoEdges(t *testing.T) {
	g := Assemble(twoFileRecords()[:1])
	assert.Equal(t, 0, g.Stats().EdgeCount)
}

// stubResolver records that it ran after the node pass.
type stubResolver struct{ sawNodes int }

func (r *stubResolver) Resolve(g *ContextGraph, _ []extract.Record) {
	r.sawNodes = g.Stats().NodeCount
}

func TestAssembleWithCustomResolver(t *testing.T) {
	r := &stubResolver{}
	g := AssembleWith(twoFileRecords(), r)

	assert.Equal(t, 6, r.sawNodes, "resolver must see the completed node pass")
	assert.Equal(t, 0, g.Stats().EdgeCount)
}
