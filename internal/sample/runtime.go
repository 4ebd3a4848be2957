package sample

import (
	"runtime"

	"github.com/anoideaopen/mx/core/naming"
	"github.com/anoideaopen/mx/version"
)

// Runtime reports on the running process and names itself.
type Runtime struct{}

func (Runtime) ObjectName() (naming.ObjectName, error) {
	return naming.New("mx.sample", "type", "Runtime")
}

func (Runtime) GetGoVersion() string {
	return runtime.Version()
}

func (Runtime) GetVersion() string {
	return version.Version()
}

func (Runtime) GetGoroutines() int {
	return runtime.NumGoroutine()
}

func (Runtime) BuildSetting(key string) string {
	return version.Settings()[key]
}

func (Runtime) GC() {
	runtime.GC()
}
