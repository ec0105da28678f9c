package basenji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var v8A = Variant{GType: 8}
var v11A = Variant{GType: 11}

func TestOdaBinder_BindAndQuery(t *testing.T) {
	var o OdaBinder
	var _, ok = o.Aid(v8A, OdaAcceptFraction)
	assert.False(t, ok)

	o.Observe(v8A, AidTMC, 0, true)
	var aid, ok2 = o.Aid(v8A, OdaAcceptFraction)
	assert.True(t, ok2)
	assert.Equal(t, AidTMC, aid)
}

func TestOdaBinder_FractionThreshold(t *testing.T) {
	var o OdaBinder

	// One stray 11A binding against a wall of 8A observations: under
	// the 2% default it must look absent.
	o.Observe(v11A, AidRTPlus, 0, true)
	for i := 0; i < 99; i++ {
		o.Observe(v8A, AidTMC, 0, true)
	}
	var _, ok = o.Aid(v11A, OdaAcceptFraction)
	assert.False(t, ok)

	// More 3A groups for 11A push it over the threshold; acceptance
	// is monotonic in further observations of the same variant.
	for i := 0; i < 10; i++ {
		o.Observe(v11A, AidRTPlus, 0, true)
	}
	var aid, ok2 = o.Aid(v11A, OdaAcceptFraction)
	assert.True(t, ok2)
	assert.Equal(t, AidRTPlus, aid)

	// The display threshold is stricter.
	var _, ok3 = o.Aid(v11A, OdaDisplayFraction)
	assert.True(t, ok3) // 10% > 5%
}

func TestOdaBinder_RebindNeedsCleanGroup(t *testing.T) {
	var o OdaBinder
	o.Observe(v8A, AidTMC, 3, true) // first bind takes anything

	o.Observe(v8A, 0x1234, 2, true) // two corrected bits: ignored
	var aid, _ = o.Aid(v8A, 0)
	assert.Equal(t, AidTMC, aid)

	o.Observe(v8A, 0x1234, 1, true) // nearly clean: rebinds
	aid, _ = o.Aid(v8A, 0)
	assert.Equal(t, uint16(0x1234), aid)
}

func TestOdaBinder_NotCarriedCountsButNeverBinds(t *testing.T) {
	var o OdaBinder
	o.Observe(v8A, AidTMC, 0, false)
	o.Observe(v8A, AidTMC, 0, false)

	var _, ok = o.Aid(v8A, 0)
	assert.False(t, ok)
	assert.Empty(t, o.Bindings())

	// The counts still weigh against other variants.
	o.Observe(v11A, AidRTPlus, 0, true)
	var bindings = o.Bindings()
	assert.Len(t, bindings, 1)
	assert.InDelta(t, 1.0/3.0, bindings[0].Share, 1e-9)
}

func TestOdaBinder_Reset(t *testing.T) {
	var o OdaBinder
	o.Observe(v8A, AidTMC, 0, true)
	o.Reset()
	var _, ok = o.Aid(v8A, 0)
	assert.False(t, ok)
}
