package palette

import (
	"BurningShip/burningship"
	"BurningShip/misc"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// ScriptFunction is the global a palette script has to define. It receives the smoothed escape value and returns
// red, green, blue and alpha.
const ScriptFunction = "color"

// DefaultScriptTimeout bounds loading a script and every single call of its color function
const DefaultScriptTimeout = time.Second

var ErrScriptTimeout = errors.New("palette script timed out")

// Base library functions that reach the file system or compile code at run time
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring"}

// DefaultScript reproduces burningship.DefaultPalette
const DefaultScript = `
function color(mu)
  return 255, mu * 7, 0, mu * 15
end
`

// Script is a palette written in Lua.
// An LState is single threaded, so Map serializes callers. The first runtime error or timeout stops the script for
// good and is reported by Err.
type Script struct {
	err     error
	fn      lua.LValue
	mutex   sync.Mutex
	name    string
	state   *lua.LState
	timeout time.Duration
}

func NewScript(name string, source string) (*Script, error) {
	return NewScriptWithTimeout(name, source, DefaultScriptTimeout)
}

// NewScriptWithTimeout loads a script whose loading and color calls each have to finish within timeout
func NewScriptWithTimeout(name string, source string, timeout time.Duration) (*Script, error) {
	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}

	state := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(state)
	lua.OpenMath(state)
	lua.OpenString(state)
	lua.OpenTable(state)
	for _, global := range unsafeGlobals {
		state.SetGlobal(global, lua.LNil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	state.SetContext(ctx)
	err := state.DoString(source)
	state.RemoveContext()
	timedOut := ctx.Err() != nil
	cancel()
	if err != nil {
		state.Close()
		if timedOut {
			return nil, fmt.Errorf("%w: loading %s took longer than %s", ErrScriptTimeout, name, timeout)
		}
		return nil, fmt.Errorf("loading palette script %s: %w", name, err)
	}

	fn := state.GetGlobal(ScriptFunction)
	if fn.Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("palette script %s does not define function %s(mu)", name, ScriptFunction)
	}

	hash := fnv.New32a()
	hash.Write([]byte(source))

	return &Script{
		fn:      fn,
		name:    fmt.Sprintf("script:%s:%08x", name, hash.Sum32()),
		state:   state,
		timeout: timeout,
	}, nil
}

func LoadScript(fileName string) (*Script, error) {
	source, err := misc.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	return NewScript(fileName, string(source))
}

func (s *Script) Map(mu float64) burningship.Channels {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var channels burningship.Channels
	if s.err != nil || s.state == nil {
		return channels
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.state.SetContext(ctx)
	err := s.state.CallByParam(lua.P{Fn: s.fn, NRet: 4, Protect: true}, lua.LNumber(mu))
	s.state.RemoveContext()
	timedOut := ctx.Err() != nil
	cancel()
	if err != nil {
		if timedOut {
			s.err = fmt.Errorf("%w: %s(%g) ran longer than %s", ErrScriptTimeout, ScriptFunction, mu, s.timeout)
		} else {
			s.err = fmt.Errorf("%s(%g): %w", ScriptFunction, mu, err)
		}
		return channels
	}
	defer s.state.Pop(4)

	for i := 0; i < 4; i++ {
		value := s.state.Get(i - 4)
		number, ok := value.(lua.LNumber)
		if !ok {
			s.err = fmt.Errorf("%s(%g) returned %s for channel %d, want a number", ScriptFunction, mu, value.Type(), i)
			return burningship.Channels{}
		}
		channels[i] = float64(number)
	}
	return channels
}

func (s *Script) Err() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.err
}

func (s *Script) Name() string {
	return s.name
}

func (s *Script) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.state != nil {
		s.state.Close()
		s.state = nil
	}
}
