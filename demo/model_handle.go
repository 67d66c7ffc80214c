package demo

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/siescene"
)

var ErrModelNotReady = errors.New("model not ready")

// ModelHandle is the asynchronously loaded model. It is only touched on
// the update goroutine.
type ModelHandle struct {
	obj     *siescene.Object3D
	err     error
	pending *mgl64.Vec3
}

func (h *ModelHandle) Get() (*siescene.Object3D, bool) {
	return h.obj, h.obj != nil
}

func (h *ModelHandle) Ready() bool {
	return h.obj != nil
}

// Err is the load failure, if any.
func (h *ModelHandle) Err() error {
	return h.err
}

// LookAt orients the model towards target. Before the model arrives the
// target is kept and ErrModelNotReady returned; after a failed load the
// error also wraps the load failure.
func (h *ModelHandle) LookAt(target mgl64.Vec3) error {
	if h.obj != nil {
		h.obj.LookAt(target)
		return nil
	}
	if h.err != nil {
		return fmt.Errorf("%w: %w", ErrModelNotReady, h.err)
	}
	h.pending = &target
	return ErrModelNotReady
}

// Resolve sets the model and applies the last requested look-at target.
func (h *ModelHandle) Resolve(obj *siescene.Object3D) {
	h.obj = obj
	h.err = nil
	if h.pending != nil && obj != nil {
		obj.LookAt(*h.pending)
	}
	h.pending = nil
}

func (h *ModelHandle) Fail(err error) {
	h.err = err
	h.pending = nil
}

// Pending returns the look-at target waiting for the model.
func (h *ModelHandle) Pending() (mgl64.Vec3, bool) {
	if h.pending == nil {
		return mgl64.Vec3{}, false
	}
	return *h.pending, true
}
