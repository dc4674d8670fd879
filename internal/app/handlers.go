package app

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/qcore/internal/compilestore"
	"github.com/kegliz/qcore/qc/gate"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/kegliz/qcore/qc/passmgr"
)

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// gateRequest is the wire shape of one instruction inside a kernel
// submitted to /compile.
type gateRequest struct {
	Type   string `json:"type"`
	Qubits []int  `json:"qubits"`
	Cregs  []int  `json:"cregs"`
	Bregs  []int  `json:"bregs"`
}

// kernelRequest is the wire shape of one kernel submitted to /compile.
type kernelRequest struct {
	Name   string        `json:"name"`
	Qubits int           `json:"qubits"`
	Cregs  int           `json:"cregs"`
	Bregs  int           `json:"bregs"`
	Gates  []gateRequest `json:"gates"`
}

// CompileRequest is the body of POST /compile: one or more kernels plus
// the strategy JSON (spec §4.3/§6) describing which passes to run.
type CompileRequest struct {
	Kernels  []kernelRequest `json:"kernels"`
	Strategy map[string]interface{} `json:"strategy"`
}

// CompileResponse reports, per kernel, the resulting schedule depth and
// gate count, plus the id a caller can use to fetch the full result.
type CompileResponse struct {
	ID      string                 `json:"id"`
	Kernels []CompiledKernelReport `json:"kernels"`
}

type CompiledKernelReport struct {
	Name  string `json:"name"`
	Depth uint64 `json:"depth"`
	Gates int    `json:"gates"`
}

// HealthHandler is the handler for the /health endpoint
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// ListPasses is the handler for the /passes endpoint: it dumps every
// registered pass type name known to the driver's factory.
func (a *appServer) ListPasses(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}
	l.Debug().Msg("serving passes endpoint")
	c.JSON(http.StatusOK, gin.H{"types": a.factory.TypeNames()})
}

// Compile is the handler for the /compile endpoint: it decodes the
// submitted kernels and strategy JSON, builds and runs a pass tree over
// them, and stores the result under a fresh id.
func (a *appServer) Compile(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}
	l.Debug().Msg("serving compile endpoint")

	var req CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}

	program, err := buildProgram(req)
	if err != nil {
		l.Error().Err(err).Msg("building program from request failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategyJSON, err := strategyToJSON(req.Strategy)
	if err != nil {
		l.Error().Err(err).Msg("marshaling strategy failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	root, err := passmgr.BuildFromJSON(strategyJSON, a.factory)
	if err != nil {
		l.Error().Err(err).Msg("building pass tree from strategy failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := &passmgr.Context{}
	if err := root.Compile(program, ctx); err != nil {
		l.Error().Err(err).Msg("pass tree compile failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	report := make([]CompiledKernelReport, 0, len(program.Kernels))
	for _, k := range program.Kernels {
		entry := CompiledKernelReport{Name: k.Name, Gates: len(k.Circuit.Gates)}
		if sched, ok := ctx.Schedules[k.Name]; ok {
			entry.Depth = sched.Depth()
		}
		report = append(report, entry)
	}

	id := a.store.Put(&compilestore.Result{Program: program, Schedules: ctx.Schedules})
	c.JSON(http.StatusOK, CompileResponse{ID: id, Kernels: report})
}

// GetCompileResult is the handler for GET /compile/:id.
func (a *appServer) GetCompileResult(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}
	id := c.Param("id")
	result, ok := a.store.Get(id)
	if !ok {
		l.Warn().Str("id", id).Msg("compile result not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": result.Program.Name, "kernels": len(result.Program.Kernels)})
}

func buildProgram(req CompileRequest) (*ir.Program, error) {
	program := ir.NewProgram("compile-request")
	for _, kr := range req.Kernels {
		k := ir.NewKernel(kr.Name, kr.Qubits, kr.Cregs, kr.Bregs)
		for _, gr := range kr.Gates {
			kind := gate.Lookup(gr.Type)
			if kind == nil {
				kind = gate.NewCustom(gr.Type, len(gr.Qubits))
			}
			k.Circuit.Add(ir.NewInstruction(kind, 1, gr.Qubits, gr.Cregs, gr.Bregs))
		}
		program.AddKernel(k)
	}
	return program, nil
}

func strategyToJSON(strategy map[string]interface{}) ([]byte, error) {
	if strategy == nil {
		strategy = map[string]interface{}{}
	}
	return json.Marshal(strategy)
}
