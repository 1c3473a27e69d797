// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package codec

import (
	"fmt"
	"sort"

	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/internal/jsonenc"
	"github.com/rkoesters/otioframe/object"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
	"github.com/rkoesters/otioframe/timeline"
)

// writable is any entity writeNode knows how to render; it is
// object.SerializableObject restated locally so this file documents its own
// contract rather than forcing every caller to import object just to spell
// the parameter type.
type writable = object.SerializableObject

// downgradeManifest names the family/label pair a Marshal call should
// target: every object whose current schema version exceeds the version
// registered for its name under family/label is downgraded before it is
// written, via schema.Downgrade.
type downgradeManifest struct {
	family string
	label  string
}

// writeState is carried through one Marshal call. It holds the per-root
// bookkeeping spec.md's instancing model needs: pending tracks objects
// still being written (for cycle detection), completed records the ref id
// already assigned to an object that has finished writing (for instancing),
// and counters hands out the next ref id for a given schema name.
//
// pending entries are removed once an object's subtree has been fully
// written; completed entries never are, so a later non-cyclic reuse of the
// same pointer still resolves to a ref instead of being silently
// re-serialized in full.
type writeState struct {
	pending    map[writable]bool
	completed  map[writable]string
	counters   map[string]int
	instancing bool
	manifest   *downgradeManifest
}

func newWriteState() *writeState {
	return &writeState{
		pending:    make(map[writable]bool),
		completed:  make(map[writable]string),
		counters:   make(map[string]int),
		instancing: true,
	}
}

// MarshalOption configures a single Marshal call.
type MarshalOption func(*writeState)

// WithDowngradeManifest makes Marshal downgrade every object whose current
// schema version exceeds the version registered for family/label (see
// schema.RegisterFamilyLabel), matching the original serializer's
// FAMILY_LABEL_MAP-driven write path.
func WithDowngradeManifest(family, label string) MarshalOption {
	return func(st *writeState) { st.manifest = &downgradeManifest{family: family, label: label} }
}

// WithoutInstancing disables SerializableObjectRef.1 substitution: every
// encounter of a shared object is written out in full. Cycle detection
// still applies regardless of this option.
func WithoutInstancing() MarshalOption {
	return func(st *writeState) { st.instancing = false }
}

// Marshal renders obj as wire JSON.
func Marshal(obj writable, opts ...MarshalOption) ([]byte, error) {
	st := newWriteState()
	for _, opt := range opts {
		opt(st)
	}
	enc := jsonenc.NewEncoder()
	if err := st.writeNode(enc, obj); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

func schemaTag(name string, version int) string {
	return fmt.Sprintf("%s.%d", name, version)
}

// wireIdentity returns the (name, version) pair obj should be tagged and
// looked up under on the wire. *timeline.UnknownSchema is a special case:
// its own SchemaName/SchemaVersion report the registry dispatch identity
// ("UnknownSchema", 1), while the wire tag and any downgrade-manifest
// lookup must use the schema it actually came in as.
func wireIdentity(obj writable) (string, int) {
	if u, ok := obj.(*timeline.UnknownSchema); ok {
		return u.OriginalSchemaName(), u.OriginalSchemaVersion()
	}
	return obj.SchemaName(), obj.SchemaVersion()
}

// writeNode is the single entry point every entity in the object graph
// passes through, directly or via writeValue's KindRetained case. It
// enforces the pending/completed bookkeeping spec.md's instancing model and
// the §8 cycle-detection property require, then stages a downgrade before
// emitting the object frame if a manifest is configured and applicable.
func (st *writeState) writeNode(s sink, obj writable) error {
	if obj == nil {
		s.WriteNull()
		return nil
	}

	name, version := wireIdentity(obj)

	if st.pending[obj] {
		return registry.NewErrorWithSubject(registry.KindObjectCycle,
			"object graph contains a retainer cycle", name)
	}

	if refID, ok := st.completed[obj]; ok && st.instancing {
		s.BeginObject()
		s.WriteStringField("OTIO_SCHEMA", "SerializableObjectRef.1")
		s.WriteStringField("id", refID)
		s.EndObject()
		return nil
	}

	st.pending[obj] = true
	defer delete(st.pending, obj)

	st.counters[name]++
	refID := fmt.Sprintf("%s-%d", name, st.counters[name])
	if st.instancing {
		st.completed[obj] = refID
	}

	if st.manifest != nil {
		if target, ok := schema.TargetVersionForLabel(st.manifest.family, st.manifest.label, name); ok && target < version {
			return st.writeDowngraded(s, obj, name, target, refID)
		}
	}

	s.BeginObject()
	s.WriteStringField("OTIO_SCHEMA", schemaTag(name, version))
	if st.instancing {
		s.WriteStringField("OTIO_REF_ID", refID)
	}
	if err := st.writeFields(s, obj); err != nil {
		return err
	}
	s.EndObject()
	return nil
}

// writeDowngraded stages obj through a dictSink (the cloning sink), applies
// schema.Downgrade down to target, and emits the result under the normal
// object frame tagged "name.target". The staging call goes straight to
// writeFields rather than back through writeNode, so obj's own
// downgrade-on-write check never re-triggers; nested children reached while
// staging still go through writeNode and are downgraded independently.
func (st *writeState) writeDowngraded(s sink, obj writable, name string, target int, refID string) error {
	ds := newDictSink()
	ds.BeginObject()
	if err := st.writeFields(ds, obj); err != nil {
		return err
	}
	ds.EndObject()

	dict, ok := ds.Value().AsDict()
	if !ok {
		return registry.NewErrorWithSubject(registry.KindInternalError,
			"downgrade staging did not produce a dictionary", fmt.Sprintf("%T", obj))
	}
	if err := schema.Downgrade(dict, name, target); err != nil {
		return err
	}
	dict.Set("OTIO_SCHEMA", dynval.String(schemaTag(name, target)))
	if st.instancing {
		dict.Set("OTIO_REF_ID", dynval.String(refID))
	}
	return st.writeDict(s, dict)
}

// writeFields dispatches obj to its type-specific field encoder. Every
// concrete timeline type this package knows about is listed here; each
// writes only its own body (no surrounding object frame, no OTIO_SCHEMA),
// since writeNode already owns both.
func (st *writeState) writeFields(s sink, obj writable) error {
	switch v := obj.(type) {
	case *timeline.Track:
		return st.writeTrackFields(s, v)
	case *timeline.Stack:
		return st.writeStackFields(s, v)
	case *timeline.Clip:
		return st.writeClipFields(s, v)
	case *timeline.Gap:
		return st.writeGapFields(s, v)
	case *timeline.Transition:
		return st.writeTransitionFields(s, v)
	case *timeline.Marker:
		return st.writeMarkerFields(s, v)
	case timeline.Effect:
		return st.writeEffectFields(s, v)
	case timeline.MediaReference:
		return st.writeMediaReferenceFields(s, v)
	case *timeline.SerializableCollection:
		return st.writeSerializableCollectionFields(s, v)
	case *timeline.UnknownSchema:
		return st.writeUnknownSchemaFields(s, v)
	default:
		return registry.NewErrorWithSubject(registry.KindMalformedSchema,
			"codec: no encoder registered for type", fmt.Sprintf("%T", obj))
	}
}

func (st *writeState) writeEffects(s sink, key string, effects []timeline.Effect) error {
	s.WriteKey(key)
	s.BeginArray()
	for i, e := range effects {
		if i > 0 {
			s.WriteComma()
		}
		if err := st.writeNode(s, e); err != nil {
			return err
		}
	}
	s.EndArray()
	return nil
}

func (st *writeState) writeMarkers(s sink, key string, markers []*timeline.Marker) error {
	s.WriteKey(key)
	s.BeginArray()
	for i, m := range markers {
		if i > 0 {
			s.WriteComma()
		}
		if err := st.writeNode(s, m); err != nil {
			return err
		}
	}
	s.EndArray()
	return nil
}

func (st *writeState) writeSourceRange(s sink, sr *dynval.Value) error {
	if sr == nil {
		s.WriteNullField("source_range")
		return nil
	}
	s.WriteKey("source_range")
	return st.writeValue(s, *sr)
}

func writeColor(s sink, c *timeline.Color) {
	if c == nil {
		s.WriteNullField("color")
		return
	}
	s.WriteKey("color")
	s.BeginObject()
	s.WriteFloat64Field("r", c.R)
	s.WriteFloat64Field("g", c.G)
	s.WriteFloat64Field("b", c.B)
	s.WriteFloat64Field("a", c.A)
	s.EndObject()
}

func (st *writeState) writeItemCommonFields(s sink, name string, metadata *dynval.OrderedDict, sourceRange *dynval.Value, effects []timeline.Effect, markers []*timeline.Marker, enabled bool) error {
	s.WriteStringField("name", name)
	s.WriteKey("metadata")
	if err := st.writeDict(s, metadata); err != nil {
		return err
	}
	if err := st.writeSourceRange(s, sourceRange); err != nil {
		return err
	}
	if err := st.writeEffects(s, "effects", effects); err != nil {
		return err
	}
	if err := st.writeMarkers(s, "markers", markers); err != nil {
		return err
	}
	s.WriteBoolField("enabled", enabled)
	return nil
}

func timeRangeValuePtr(sr *rtime.TimeRange) *dynval.Value {
	if sr == nil {
		return nil
	}
	v := dynval.TimeRangeValue(*sr)
	return &v
}

func (st *writeState) writeTrackFields(s sink, t *timeline.Track) error {
	if err := st.writeItemCommonFields(s, t.Name(), t.Metadata(), timeRangeValuePtr(t.SourceRange()), t.Effects(), t.Markers(), t.Enabled()); err != nil {
		return err
	}
	writeColor(s, t.ItemColor())
	s.WriteStringField("kind", t.Kind())
	s.WriteKey("children")
	s.BeginArray()
	for i, child := range t.Children() {
		if i > 0 {
			s.WriteComma()
		}
		if err := st.writeNode(s, child.(writable)); err != nil {
			return err
		}
	}
	s.EndArray()
	return nil
}

func (st *writeState) writeStackFields(s sink, stk *timeline.Stack) error {
	if err := st.writeItemCommonFields(s, stk.Name(), stk.Metadata(), timeRangeValuePtr(stk.SourceRange()), stk.Effects(), stk.Markers(), stk.Enabled()); err != nil {
		return err
	}
	writeColor(s, stk.ItemColor())
	s.WriteKey("children")
	s.BeginArray()
	for i, child := range stk.Children() {
		if i > 0 {
			s.WriteComma()
		}
		if err := st.writeNode(s, child.(writable)); err != nil {
			return err
		}
	}
	s.EndArray()
	return nil
}

func (st *writeState) writeClipFields(s sink, c *timeline.Clip) error {
	if err := st.writeItemCommonFields(s, c.Name(), c.Metadata(), timeRangeValuePtr(c.SourceRange()), c.Effects(), c.Markers(), c.Enabled()); err != nil {
		return err
	}
	writeColor(s, c.ItemColor())
	s.WriteKey("media_references")
	s.BeginObject()
	refs := c.MediaReferences()
	keys := make([]string, 0, len(refs))
	for key := range refs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	first := true
	for _, key := range keys {
		ref := refs[key]
		if !first {
			s.WriteComma()
		}
		first = false
		s.WriteKey(key)
		if err := st.writeNode(s, ref); err != nil {
			return err
		}
	}
	s.EndObject()
	s.WriteStringField("active_media_reference_key", c.ActiveMediaReferenceKey())
	return nil
}

func (st *writeState) writeGapFields(s sink, g *timeline.Gap) error {
	if err := st.writeItemCommonFields(s, g.Name(), g.Metadata(), timeRangeValuePtr(g.SourceRange()), g.Effects(), g.Markers(), g.Enabled()); err != nil {
		return err
	}
	writeColor(s, g.ItemColor())
	return nil
}

func (st *writeState) writeTransitionFields(s sink, t *timeline.Transition) error {
	s.WriteStringField("name", t.Name())
	s.WriteKey("metadata")
	if err := st.writeDict(s, t.Metadata()); err != nil {
		return err
	}
	s.WriteStringField("transition_type", string(t.TransitionKind()))
	s.WriteKey("in_offset")
	writeRationalTime(s, t.InOffset())
	s.WriteKey("out_offset")
	writeRationalTime(s, t.OutOffset())
	return nil
}

func (st *writeState) writeMarkerFields(s sink, m *timeline.Marker) error {
	s.WriteStringField("name", m.Name())
	s.WriteKey("metadata")
	if err := st.writeDict(s, m.Metadata()); err != nil {
		return err
	}
	s.WriteKey("marked_range")
	writeTimeRange(s, m.MarkedRange())
	s.WriteStringField("color", string(m.Color()))
	s.WriteStringField("comment", m.Comment())
	return nil
}

func (st *writeState) writeEffectFields(s sink, e timeline.Effect) error {
	s.WriteStringField("name", e.Name())
	s.WriteKey("metadata")
	if err := st.writeDict(s, e.Metadata()); err != nil {
		return err
	}
	s.WriteStringField("effect_name", e.EffectName())
	if lw, ok := e.(*timeline.LinearTimeWarp); ok {
		s.WriteFloat64Field("time_scalar", lw.TimeScalar())
	}
	return nil
}

func (st *writeState) writeMediaReferenceFields(s sink, ref timeline.MediaReference) error {
	s.WriteStringField("name", ref.Name())
	s.WriteKey("metadata")
	if err := st.writeDict(s, ref.Metadata()); err != nil {
		return err
	}
	if ar := ref.AvailableRange(); ar != nil {
		s.WriteKey("available_range")
		writeTimeRange(s, *ar)
	} else {
		s.WriteNullField("available_range")
	}
	if bounds := ref.AvailableImageBounds(); bounds != nil {
		s.WriteKey("available_image_bounds")
		writeBox2d(s, *bounds)
	} else {
		s.WriteNullField("available_image_bounds")
	}
	switch r := ref.(type) {
	case *timeline.ExternalReference:
		s.WriteStringField("target_url", r.TargetURL())
	case *timeline.GeneratorReference:
		s.WriteStringField("generator_kind", r.GeneratorKind())
		s.WriteKey("parameters")
		if err := st.writeDict(s, r.Parameters()); err != nil {
			return err
		}
	case *timeline.ImageSequenceReference:
		s.WriteStringField("target_url_base", r.TargetURLBase())
		s.WriteStringField("name_prefix", r.NamePrefix())
		s.WriteStringField("name_suffix", r.NameSuffix())
		s.WriteInt64Field("start_frame", int64(r.StartFrame()))
		s.WriteInt64Field("frame_step", int64(r.FrameStep()))
		s.WriteFloat64Field("rate", r.Rate())
		s.WriteInt64Field("frame_zero_padding", int64(r.FrameZeroPadding()))
		s.WriteStringField("missing_frame_policy", string(r.MissingFramePolicy()))
	case *timeline.MissingReference:
		// No additional fields.
	}
	return nil
}

func (st *writeState) writeSerializableCollectionFields(s sink, sc *timeline.SerializableCollection) error {
	s.WriteStringField("name", sc.Name())
	s.WriteKey("metadata")
	if err := st.writeDict(s, sc.Metadata()); err != nil {
		return err
	}
	s.WriteKey("children")
	s.BeginArray()
	for i, child := range sc.Children() {
		if i > 0 {
			s.WriteComma()
		}
		if err := st.writeNode(s, child.(writable)); err != nil {
			return err
		}
	}
	s.EndArray()
	return nil
}

func (st *writeState) writeUnknownSchemaFields(s sink, u *timeline.UnknownSchema) error {
	d := u.Data()
	if d == nil {
		return nil
	}
	for _, k := range d.Keys() {
		if k == "OTIO_SCHEMA" || k == "OTIO_REF_ID" {
			continue
		}
		v, _ := d.Get(k)
		s.WriteKey(k)
		if err := st.writeValue(s, v); err != nil {
			return err
		}
	}
	return nil
}
