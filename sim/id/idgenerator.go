// Package id provides the ID generators used by events, tasks and records.
package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator returns a new ID on every call. Implementations are safe for
// concurrent use.
type IDGenerator interface {
	Generate() string
}

var current atomic.Pointer[generatorBox]

// generatorBox lets an interface live behind an atomic.Pointer.
type generatorBox struct {
	IDGenerator
}

func init() {
	UseSequential()
}

// NewIDGenerator returns a generator of increasing decimal IDs, starting at 1.
func NewIDGenerator() IDGenerator {
	return &sequential{}
}

// UseSequential makes Generate return increasing decimal IDs, starting over
// at 1. Runs with the same input get the same IDs.
func UseSequential() {
	current.Store(&generatorBox{NewIDGenerator()})
}

// UseParallel makes Generate return globally unique xid IDs, which differ
// from run to run.
func UseParallel() {
	current.Store(&generatorBox{xidGenerator{}})
}

// Generate returns an ID from the process-wide generator.
func Generate() string {
	return current.Load().Generate()
}

type sequential struct {
	last atomic.Uint64
}

func (g *sequential) Generate() string {
	return strconv.FormatUint(g.last.Add(1), 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
