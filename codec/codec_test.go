// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package codec

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
	"github.com/rkoesters/otioframe/timeline"
)

func sampleTrack() *timeline.Track {
	md := dynval.NewOrderedDict()
	md.Set("take", dynval.Int64(3))

	clip := timeline.NewClip("shot_010", timeline.NewExternalReference("shot_010", "file:///media/shot_010.mov",
		rtimeRangePtr(rtime.New(0, 24), rtime.New(48, 24)), nil), nil, md, nil, nil, "", nil)
	gap := timeline.NewGapWithDuration(rtime.New(24, 24))

	track := timeline.NewTrack("V1", nil, "", nil, nil)
	if err := track.AppendChild(clip); err != nil {
		panic(err)
	}
	if err := track.AppendChild(gap); err != nil {
		panic(err)
	}
	return track
}

func rtimeRangePtr(start, duration rtime.RationalTime) *rtime.TimeRange {
	r := rtime.NewTimeRange(start, duration)
	return &r
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	track := sampleTrack()

	data, err := Marshal(track)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	got, ok := decoded.(*timeline.Track)
	require.Truef(t, ok, "decoded value is %T, want *timeline.Track", decoded)
	assert.Equal(t, "V1", got.Name())
	require.Len(t, got.Children(), 2)

	clip, ok := got.Children()[0].(*timeline.Clip)
	require.Truef(t, ok, "children[0] is %T, want *timeline.Clip", got.Children()[0])
	assert.Equal(t, "shot_010", clip.Name())

	ref, ok := clip.MediaReference().(*timeline.ExternalReference)
	require.Truef(t, ok, "media reference is %T, want *timeline.ExternalReference", clip.MediaReference())
	assert.Equal(t, "file:///media/shot_010.mov", ref.TargetURL())

	_, ok = got.Children()[1].(*timeline.Gap)
	assert.Truef(t, ok, "children[1] is %T, want *timeline.Gap", got.Children()[1])
}

func TestCloneIsEquivalentButDistinct(t *testing.T) {
	track := sampleTrack()

	cloned, err := Clone(track)
	require.NoError(t, err)
	assert.NotSame(t, track, cloned, "Clone should not return the same pointer")

	equal, err := Equivalent(track, cloned)
	require.NoError(t, err)
	assert.True(t, equal, "clone should be equivalent to the original")

	clonedTrack := cloned.(*timeline.Track)
	clonedTrack.SetName("renamed")

	equal, err = Equivalent(track, clonedTrack)
	require.NoError(t, err)
	assert.False(t, equal, "renaming the clone should break equivalence with the original")
}

func TestUnmarshalUnknownSchemaRoundTrips(t *testing.T) {
	data := []byte(`{"OTIO_SCHEMA":"FutureWidget.7","name":"mystery","widget_count":3}`)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	unk, ok := decoded.(*timeline.UnknownSchema)
	require.Truef(t, ok, "decoded value is %T, want *timeline.UnknownSchema", decoded)
	assert.Equal(t, "FutureWidget", unk.OriginalSchemaName())
	assert.Equal(t, 7, unk.OriginalSchemaVersion())

	reencoded, err := Marshal(unk)
	require.NoError(t, err)

	redecoded, err := Unmarshal(reencoded)
	require.NoError(t, err)

	unk2, ok := redecoded.(*timeline.UnknownSchema)
	require.Truef(t, ok, "re-decoded value is %T, want *timeline.UnknownSchema", redecoded)
	assert.Equal(t, "FutureWidget", unk2.OriginalSchemaName(), "lost original schema name across a second round trip")
}

func TestSanitizeJSONReplacesNonStandardFloats(t *testing.T) {
	in := []byte(`{"rate": Infinity, "scale": -Infinity, "value": NaN, "other": "Infinity"}`)
	out := sanitizeJSON(in)

	var m map[string]any
	require.NoErrorf(t, json.Unmarshal(out, &m), "sanitized JSON does not parse, data=%s", out)

	assert.Nil(t, m["rate"])
	assert.Nil(t, m["scale"])
	assert.Nil(t, m["value"])
	assert.Equal(t, "Infinity", m["other"], "sanitize must not touch string contents")
}

func TestWriteFloat64SpecialValues(t *testing.T) {
	track := timeline.NewTrack("rates", nil, "", nil, nil)
	clip := timeline.NewClip("c", timeline.NewGeneratorReference("g", "SMPTEBars", nil, nil, nil), nil, nil, nil, nil, "", nil)
	require.NoError(t, track.AppendChild(clip))

	ltw := timeline.NewLinearTimeWarp("warp", "LinearTimeWarp", math.Inf(1), nil)
	clip.SetEffects([]timeline.Effect{ltw})

	data, err := Marshal(track)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	got := decoded.(*timeline.Track).Children()[0].(*timeline.Clip).Effects()[0].(*timeline.LinearTimeWarp)
	assert.True(t, math.IsInf(got.TimeScalar(), 1), "TimeScalar() = %v, want +Inf", got.TimeScalar())
}

// TestMarshalInstancesSharedEffect covers scenario 6: two clips that retain
// the same Effect must serialize it once, with the second clip referencing
// it via a SerializableObjectRef.1 node, and Unmarshal must reconstruct both
// slots as the identical object.
func TestMarshalInstancesSharedEffect(t *testing.T) {
	shared := timeline.NewLinearTimeWarp("speed-up", "LinearTimeWarp", 2.0, nil)

	clipA := timeline.NewClip("a", timeline.NewGeneratorReference("g", "SMPTEBars", nil, nil, nil), nil, nil, []timeline.Effect{shared}, nil, "", nil)
	clipB := timeline.NewClip("b", timeline.NewGeneratorReference("g", "SMPTEBars", nil, nil, nil), nil, nil, []timeline.Effect{shared}, nil, "", nil)

	track := timeline.NewTrack("shared", nil, "", nil, nil)
	require.NoError(t, track.AppendChild(clipA))
	require.NoError(t, track.AppendChild(clipB))

	data, err := Marshal(track)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	children := raw["children"].([]any)
	secondEffects := children[1].(map[string]any)["effects"].([]any)
	ref := secondEffects[0].(map[string]any)
	assert.Equal(t, "SerializableObjectRef.1", ref["OTIO_SCHEMA"])
	assert.Equal(t, "LinearTimeWarp-1", ref["id"])

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	got := decoded.(*timeline.Track)
	gotA := got.Children()[0].(*timeline.Clip)
	gotB := got.Children()[1].(*timeline.Clip)
	require.Len(t, gotA.Effects(), 1)
	require.Len(t, gotB.Effects(), 1)
	assert.Same(t, gotA.Effects()[0], gotB.Effects()[0], "both clips should share one reconstructed Effect instance")
}

// TestMarshalDetectsObjectCycle covers the §8 cycle-detection property: a
// retainer cycle reached through metadata must fail with ObjectCycle rather
// than recursing forever.
func TestMarshalDetectsObjectCycle(t *testing.T) {
	stack := timeline.NewStack("loopy", nil, nil, nil, nil, nil)
	stack.Metadata().Set("self", dynval.Retained(stack))

	_, err := Marshal(stack)
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.Sentinel(registry.KindObjectCycle)), "err = %v, want ObjectCycle", err)
}

// TestMarshalClipMultipleMediaReferences exercises the multi-ref
// media_references wire shape (a map of named references plus the active
// key), which the single-reference NewClip constructor path never touches.
func TestMarshalClipMultipleMediaReferences(t *testing.T) {
	clip := timeline.NewClip("multi", timeline.NewExternalReference("high", "file:///hi.mov", nil, nil), nil, nil, nil, nil, "", nil)
	low := timeline.NewExternalReference("low", "file:///lo.mov", nil, nil)
	refs := clip.MediaReferences()
	refs["proxy"] = low
	require.NoError(t, clip.SetMediaReferences(refs, timeline.DefaultMediaKey))

	data, err := Marshal(clip)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	mrefs := raw["media_references"].(map[string]any)
	assert.Len(t, mrefs, 2)
	assert.Contains(t, mrefs, "proxy")
	assert.Contains(t, mrefs, timeline.DefaultMediaKey)
	assert.Equal(t, timeline.DefaultMediaKey, raw["active_media_reference_key"])

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	got := decoded.(*timeline.Clip)
	assert.Len(t, got.MediaReferences(), 2)
	assert.Equal(t, timeline.DefaultMediaKey, got.ActiveMediaReferenceKey())
	proxy, ok := got.MediaReferences()["proxy"].(*timeline.ExternalReference)
	require.True(t, ok)
	assert.Equal(t, "file:///lo.mov", proxy.TargetURL())
}

// downgradeTestEffect is a minimal Effect registered at version 2 purely to
// exercise downgrade-on-write: its fictional version 1 additionally carries
// a redundant "legacy_name" field mirroring name, the kind of field a real
// schema migration drops going forward and must restage going back.
type downgradeTestEffect struct {
	timeline.EffectBase
}

func newDowngradeTestEffect(name string) *downgradeTestEffect {
	return &downgradeTestEffect{EffectBase: timeline.NewEffectBase(name, "BoostEffect", nil)}
}

func (e *downgradeTestEffect) SchemaName() string { return "BoostEffect" }
func (e *downgradeTestEffect) SchemaVersion() int { return 2 }

func (e *downgradeTestEffect) ReadFrom(dict *dynval.OrderedDict) error {
	if v, ok := dict.Get("name"); ok {
		if s, ok := v.AsString(); ok {
			e.SetName(s)
		}
	}
	if v, ok := dict.Get("effect_name"); ok {
		if s, ok := v.AsString(); ok {
			e.SetEffectName(s)
		}
	}
	return nil
}

func init() {
	if err := schema.Register("BoostEffect", 2, func() schema.Reader {
		return newDowngradeTestEffect("")
	}, map[int]schema.UpgradeFunc{
		1: func(dict *dynval.OrderedDict) { dict.Delete("legacy_name") },
	}, map[int]schema.DowngradeFunc{
		2: func(dict *dynval.OrderedDict) {
			if v, ok := dict.Get("name"); ok {
				dict.Set("legacy_name", v)
			}
		},
	}); err != nil {
		panic(err)
	}
	schema.RegisterFamilyLabel("TEST_FAMILY", "v1-compat", map[string]int{"BoostEffect": 1})
}

// TestMarshalDowngradesOnWrite covers the downgrade-on-write path: given a
// manifest that targets an older version of a schema, Marshal stages the
// object through the cloning sink, applies the registered downgrader, and
// emits the result tagged at the older version. Unmarshal of that output
// must, symmetrically, apply the upgrader and recover a current-version
// instance.
func TestMarshalDowngradesOnWrite(t *testing.T) {
	eff := newDowngradeTestEffect("warm")
	clip := timeline.NewClip("boosted", timeline.NewGeneratorReference("g", "SMPTEBars", nil, nil, nil), nil, nil, []timeline.Effect{eff}, nil, "", nil)

	data, err := Marshal(clip, WithDowngradeManifest("TEST_FAMILY", "v1-compat"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	effects := raw["effects"].([]any)
	effDict := effects[0].(map[string]any)
	assert.Equal(t, "BoostEffect.1", effDict["OTIO_SCHEMA"])
	assert.Equal(t, "warm", effDict["legacy_name"], "downgrader should have staged the redundant legacy_name field")

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	got := decoded.(*timeline.Clip).Effects()[0].(*downgradeTestEffect)
	assert.Equal(t, "warm", got.Name())
}
