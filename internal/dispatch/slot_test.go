package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studiowebux/paceman/internal/types"
)

func TestSlot_StartsEmpty(t *testing.T) {
	slot := NewSlot()
	assert.Nil(t, slot.Read())
}

func TestSlot_SetAndClear(t *testing.T) {
	slot := NewSlot()

	outcome := types.Succeeded(&types.Response{Status: 200})
	slot.Set(outcome)
	assert.Same(t, outcome, slot.Read())

	slot.Clear()
	assert.Nil(t, slot.Read())
}

func TestSlot_ConcurrentAccess(t *testing.T) {
	slot := NewSlot()
	ok := types.Succeeded(&types.Response{Status: 200, Text: "ok"})
	failed := types.Failed(types.ResponseError{Message: "boom"})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)

		// Reader goroutine
		go func() {
			defer wg.Done()
			o := slot.Read()
			if o == nil {
				return
			}
			// A read never sees a half-built outcome
			if o.Response == nil && o.Err == nil {
				t.Error("observed outcome with neither response nor error")
			}
		}()

		// Writer goroutine
		go func(iteration int) {
			defer wg.Done()
			switch iteration % 3 {
			case 0:
				slot.Clear()
			case 1:
				slot.Set(ok)
			default:
				slot.Set(failed)
			}
		}(i)
	}

	wg.Wait()
}
