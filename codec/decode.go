// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the otioframe project

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/rkoesters/otioframe/dynval"
	"github.com/rkoesters/otioframe/object"
	"github.com/rkoesters/otioframe/registry"
	"github.com/rkoesters/otioframe/rtime"
	"github.com/rkoesters/otioframe/schema"
	"github.com/rkoesters/otioframe/timeline"
)

// readState is carried through one Unmarshal call. idTable maps an
// OTIO_REF_ID seen on a primary object to the object itself, built up as
// the document is walked; fixups are deferred assignments scheduled
// wherever a SerializableObjectRef.1 node is found in a structural slot
// (children, effects, markers, media references), run once the whole
// document has been read so a reference is never required to point
// backwards in document order.
type readState struct {
	idTable map[string]object.SerializableObject
	fixups  []func() error
}

func newReadState() *readState {
	return &readState{idTable: make(map[string]object.SerializableObject)}
}

// Unmarshal decodes wire JSON into a timeline entity. It walks the decoded
// tree itself rather than handing sonic a destination struct, since the
// concrete Go type to construct at each node is only known once its
// OTIO_SCHEMA tag has been read.
func Unmarshal(data []byte) (object.SerializableObject, error) {
	var raw any
	if err := sonic.Unmarshal(sanitizeJSON(data), &raw); err != nil {
		return nil, registry.NewError(registry.KindJSONParseError, err.Error())
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, registry.NewError(registry.KindJSONParseError, "top-level JSON value is not an object")
	}

	rs := newReadState()
	obj, err := rs.resolveEntity(m)
	if err != nil {
		return nil, err
	}
	for _, fix := range rs.fixups {
		if err := fix(); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// sanitizeJSON replaces the non-standard Infinity/-Infinity/NaN literals
// this codec's own Writer emits with null, since sonic (like encoding/json)
// rejects them. Only scans when one of those tokens might be present.
func sanitizeJSON(data []byte) []byte {
	if !bytes.Contains(data, []byte("Inf")) && !bytes.Contains(data, []byte("NaN")) {
		return data
	}

	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		if data[i] != ':' {
			out = append(out, data[i])
			i++
			continue
		}
		out = append(out, ':')
		i++

		wsStart := len(out)
		for i < len(data) && (data[i] == ' ' || data[i] == '\t' || data[i] == '\n' || data[i] == '\r') {
			out = append(out, data[i])
			i++
		}
		if i >= len(data) {
			break
		}

		replaced := false
		switch {
		case data[i] == '-' && hasToken(data, i+1, "Infinity"):
			i += 9
			replaced = true
		case data[i] == '-' && hasToken(data, i+1, "Inf") && !followsWordChar(data, i+4):
			i += 4
			replaced = true
		case hasToken(data, i, "Infinity"):
			i += 8
			replaced = true
		case hasToken(data, i, "Inf") && !followsWordChar(data, i+3):
			i += 3
			replaced = true
		case hasToken(data, i, "NaN") && !followsWordChar(data, i+3):
			i += 3
			replaced = true
		}

		if replaced {
			out = out[:wsStart]
			out = append(out, ' ', 'n', 'u', 'l', 'l')
		}
	}
	return out
}

func hasToken(data []byte, at int, token string) bool {
	return at+len(token) <= len(data) && string(data[at:at+len(token)]) == token
}

func followsWordChar(data []byte, at int) bool {
	if at >= len(data) {
		return false
	}
	c := data[at]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

// splitSchemaTag splits a wire "Name.Version" tag into its parts.
func splitSchemaTag(tag string) (name string, version int, err error) {
	idx := strings.LastIndexByte(tag, '.')
	if idx < 0 {
		return "", 0, registry.NewErrorWithSubject(registry.KindMalformedSchema, "schema tag missing version suffix", tag)
	}
	name = tag[:idx]
	version, convErr := strconv.Atoi(tag[idx+1:])
	if convErr != nil {
		return "", 0, registry.NewErrorWithSubject(registry.KindMalformedSchema, "schema tag has non-numeric version", tag)
	}
	return name, version, nil
}

// toValue converts a sonic-decoded JSON value into a dynval.Value. Objects
// tagged with one of the built-in value schemas become that Kind directly;
// any other OTIO_SCHEMA-tagged object is resolved as an entity and wrapped
// as a Retained value; untagged objects and arrays become Dict and Array
// values holding their elements converted the same way.
//
// A SerializableObjectRef.1 found here (i.e. in a generic value position
// such as metadata, rather than a structural slot) becomes an unresolved
// dynval.ObjectRef: metadata is an open bag of arbitrary content, not a
// graph edge this package tracks, so there is no slot to defer-assign into.
// Structural positions (children, effects, markers, media references) are
// resolved through resolveSlot instead, which does participate in the
// deferred-resolution pass.
func (rs *readState) toValue(raw any) (dynval.Value, error) {
	switch v := raw.(type) {
	case nil:
		return dynval.Null(), nil
	case bool:
		return dynval.Bool(v), nil
	case float64:
		return dynval.Float64(v), nil
	case string:
		return dynval.String(v), nil
	case []any:
		arr := dynval.NewArray()
		for _, elem := range v {
			val, err := rs.toValue(elem)
			if err != nil {
				return dynval.Value{}, err
			}
			arr.Append(val)
		}
		return dynval.ArrayValue(arr), nil
	case map[string]any:
		tag, ok := v["OTIO_SCHEMA"].(string)
		if !ok {
			d, err := rs.toDict(v)
			if err != nil {
				return dynval.Value{}, err
			}
			return dynval.DictValue(d), nil
		}
		name, _, err := splitSchemaTag(tag)
		if err != nil {
			return dynval.Value{}, err
		}
		switch name {
		case "RationalTime":
			return dynval.RationalTimeValue(decodeRationalTime(v)), nil
		case "TimeRange":
			return dynval.TimeRangeValue(decodeTimeRange(v)), nil
		case "TimeTransform":
			return dynval.TimeTransformValue(decodeTimeTransform(v)), nil
		case "V2d":
			return dynval.V2dValue(decodeV2d(v)), nil
		case "Box2d":
			return dynval.Box2dValue(decodeBox2d(v)), nil
		case "SerializableObjectRef":
			id, _ := v["id"].(string)
			refName, refID := id, id
			if idx := strings.IndexByte(id, '-'); idx >= 0 {
				refName, refID = id[:idx], id[idx+1:]
			}
			return dynval.ObjectRefValue(dynval.ObjectRef{SchemaName: refName, ID: refID}), nil
		default:
			obj, err := rs.resolveEntity(v)
			if err != nil {
				return dynval.Value{}, err
			}
			return dynval.Retained(obj), nil
		}
	default:
		return dynval.Value{}, registry.NewErrorWithSubject(registry.KindJSONParseError,
			fmt.Sprintf("unsupported decoded JSON value of type %T", raw), raw)
	}
}

// toDict converts a plain (non-entity) JSON object into an OrderedDict,
// omitting any of skipKeys found at the top level (used to drop
// OTIO_SCHEMA/OTIO_REF_ID from an entity's field dictionary before it
// reaches ReadFrom).
func (rs *readState) toDict(m map[string]any, skipKeys ...string) (*dynval.OrderedDict, error) {
	d := dynval.NewOrderedDict()
outer:
	for k, raw := range m {
		for _, skip := range skipKeys {
			if k == skip {
				continue outer
			}
		}
		val, err := rs.toValue(raw)
		if err != nil {
			return nil, err
		}
		d.Set(k, val)
	}
	return d, nil
}

func decodeRationalTime(m map[string]any) rtime.RationalTime {
	value, _ := m["value"].(float64)
	rate, _ := m["rate"].(float64)
	return rtime.RationalTime{Value: value, Rate: rate}
}

func decodeTimeRange(m map[string]any) rtime.TimeRange {
	var r rtime.TimeRange
	if start, ok := m["start_time"].(map[string]any); ok {
		r.StartTime = decodeRationalTime(start)
	}
	if dur, ok := m["duration"].(map[string]any); ok {
		r.Duration = decodeRationalTime(dur)
	}
	return r
}

func decodeTimeTransform(m map[string]any) rtime.TimeTransform {
	var x rtime.TimeTransform
	if off, ok := m["offset"].(map[string]any); ok {
		x.Offset = decodeRationalTime(off)
	}
	x.Scale, _ = m["scale"].(float64)
	x.Rate, _ = m["rate"].(float64)
	return x
}

func decodeV2d(m map[string]any) dynval.V2d {
	x, _ := m["x"].(float64)
	y, _ := m["y"].(float64)
	return dynval.V2d{X: x, Y: y}
}

func decodeBox2d(m map[string]any) dynval.Box2d {
	var b dynval.Box2d
	if min, ok := m["min"].(map[string]any); ok {
		b.Min = decodeV2d(min)
	}
	if max, ok := m["max"].(map[string]any); ok {
		b.Max = decodeV2d(max)
	}
	return b
}

// structuralKeys are the container fields every attach* method resolves on
// its own, re-reading them from the raw map so it can defer through
// resolveSlot. No ReadFrom implementation consumes these from its dict, so
// resolveEntity excludes them from the generic conversion below — including
// them would resolve each nested entity a second time and fail with
// DuplicateObjectReference the moment it carries an OTIO_REF_ID.
var structuralKeys = []string{"OTIO_SCHEMA", "OTIO_REF_ID", "effects", "markers", "children", "media_references"}

// resolveEntity dispatches an OTIO_SCHEMA-tagged object through the type
// registry, registers it under its OTIO_REF_ID (if the Writer assigned
// one), and attaches whatever nested containers (children, effects,
// markers, media references) the entity's own ReadFrom deliberately leaves
// unpopulated.
func (rs *readState) resolveEntity(m map[string]any) (object.SerializableObject, error) {
	tag, _ := m["OTIO_SCHEMA"].(string)
	name, version, err := splitSchemaTag(tag)
	if err != nil {
		return nil, err
	}

	dict, err := rs.toDict(m, structuralKeys...)
	if err != nil {
		return nil, err
	}

	reader, err := schema.InstanceFromSchema(name, version, dict)
	if err != nil {
		var coreErr *registry.CoreError
		if errors.As(err, &coreErr) && coreErr.Kind == registry.KindMalformedSchema {
			full, derr := rs.toDict(m)
			if derr != nil {
				return nil, derr
			}
			obj := timeline.NewUnknownSchema(name, version, full)
			if err := rs.registerRef(m, obj); err != nil {
				return nil, err
			}
			return obj, nil
		}
		return nil, err
	}

	obj, ok := reader.(object.SerializableObject)
	if !ok {
		return nil, registry.NewErrorWithSubject(registry.KindMalformedSchema,
			"registered schema factory did not produce a SerializableObject", name)
	}

	if err := rs.registerRef(m, obj); err != nil {
		return nil, err
	}

	if item, ok := obj.(timeline.Item); ok {
		if err := rs.attachEffectsAndMarkers(item, m); err != nil {
			return nil, err
		}
	}
	if comp, ok := obj.(timeline.Composition); ok {
		if err := rs.attachChildren(comp, m); err != nil {
			return nil, err
		}
	}
	if coll, ok := obj.(*timeline.SerializableCollection); ok {
		if err := rs.attachCollectionChildren(coll, m); err != nil {
			return nil, err
		}
	}
	if clip, ok := obj.(*timeline.Clip); ok {
		if err := rs.attachMediaReferences(clip, m); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// registerRef records obj under the OTIO_REF_ID the Writer assigned it, if
// any, failing with DuplicateObjectReference if that id was already claimed
// by a different primary object earlier in the document.
func (rs *readState) registerRef(m map[string]any, obj object.SerializableObject) error {
	refID, ok := m["OTIO_REF_ID"].(string)
	if !ok {
		return nil
	}
	if _, dup := rs.idTable[refID]; dup {
		return registry.NewErrorWithSubject(registry.KindDuplicateObjectReference,
			"duplicate OTIO_REF_ID", refID)
	}
	rs.idTable[refID] = obj
	return nil
}

// resolveSlot dispatches m, a structural child position, to either a
// concrete entity (resolved immediately) or, when m is a
// SerializableObjectRef.1 node, a deferred fixup that calls assign once
// every OTIO_REF_ID in the document has been registered. This is what
// reconstructs shared ownership on read: two slots pointing at the same id
// end up holding the identical object instance.
func (rs *readState) resolveSlot(m map[string]any, assign func(object.SerializableObject) error) error {
	if tag, _ := m["OTIO_SCHEMA"].(string); tag == "SerializableObjectRef.1" {
		id, _ := m["id"].(string)
		rs.fixups = append(rs.fixups, func() error {
			target, ok := rs.idTable[id]
			if !ok {
				return registry.NewErrorWithSubject(registry.KindUnresolvedObjectReference,
					"unresolved SerializableObjectRef.1", id)
			}
			return assign(target)
		})
		return nil
	}
	obj, err := rs.resolveEntity(m)
	if err != nil {
		return err
	}
	return assign(obj)
}

func (rs *readState) attachEffectsAndMarkers(item timeline.Item, m map[string]any) error {
	if raw, ok := m["effects"].([]any); ok {
		effects := make([]timeline.Effect, len(raw))
		for i, effAny := range raw {
			effMap, ok := effAny.(map[string]any)
			if !ok {
				continue
			}
			i := i
			if err := rs.resolveSlot(effMap, func(obj object.SerializableObject) error {
				eff, ok := obj.(timeline.Effect)
				if !ok {
					return registry.NewErrorWithSubject(registry.KindMalformedSchema, "effects entry is not an Effect", obj.SchemaName())
				}
				effects[i] = eff
				return nil
			}); err != nil {
				return err
			}
		}
		item.SetEffects(effects)
	}
	if raw, ok := m["markers"].([]any); ok {
		markers := make([]*timeline.Marker, len(raw))
		for i, markAny := range raw {
			markMap, ok := markAny.(map[string]any)
			if !ok {
				continue
			}
			i := i
			if err := rs.resolveSlot(markMap, func(obj object.SerializableObject) error {
				marker, ok := obj.(*timeline.Marker)
				if !ok {
					return registry.NewErrorWithSubject(registry.KindMalformedSchema, "markers entry is not a Marker", obj.SchemaName())
				}
				markers[i] = marker
				return nil
			}); err != nil {
				return err
			}
		}
		item.SetMarkers(markers)
	}
	return nil
}

// attachChildren resolves each child slot (immediately or, for a ref,
// deferred) into a fixed-size slice, then schedules one more fixup that
// appends them to comp in order once every slot has a value. Deferring the
// append itself (rather than just the slot lookup) is what lets a child
// earlier in the array reference one defined later.
func (rs *readState) attachChildren(comp timeline.Composition, m map[string]any) error {
	raw, ok := m["children"].([]any)
	if !ok {
		return nil
	}
	children := make([]timeline.Composable, len(raw))
	for i, childAny := range raw {
		childMap, ok := childAny.(map[string]any)
		if !ok {
			continue
		}
		i := i
		if err := rs.resolveSlot(childMap, func(obj object.SerializableObject) error {
			child, ok := obj.(timeline.Composable)
			if !ok {
				return registry.NewErrorWithSubject(registry.KindMalformedSchema, "child entry is not Composable", obj.SchemaName())
			}
			children[i] = child
			return nil
		}); err != nil {
			return err
		}
	}
	rs.fixups = append(rs.fixups, func() error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := comp.AppendChild(child); err != nil {
				return err
			}
		}
		return nil
	})
	return nil
}

func (rs *readState) attachCollectionChildren(coll *timeline.SerializableCollection, m map[string]any) error {
	raw, ok := m["children"].([]any)
	if !ok {
		return nil
	}
	children := make([]object.SerializableObject, len(raw))
	for i, childAny := range raw {
		childMap, ok := childAny.(map[string]any)
		if !ok {
			continue
		}
		i := i
		if err := rs.resolveSlot(childMap, func(obj object.SerializableObject) error {
			children[i] = obj
			return nil
		}); err != nil {
			return err
		}
	}
	rs.fixups = append(rs.fixups, func() error {
		for _, child := range children {
			if child != nil {
				coll.AppendChild(child)
			}
		}
		return nil
	})
	return nil
}

// attachMediaReferences resolves each named slot in place: refs is
// pre-populated with every key (nil-valued where resolution is deferred)
// before SetMediaReferences is called, so its activeKey validation sees the
// key whether or not that slot's object has resolved yet, and the map
// SetMediaReferences stores is the same one later fixups mutate.
func (rs *readState) attachMediaReferences(clip *timeline.Clip, m map[string]any) error {
	raw, ok := m["media_references"].(map[string]any)
	if !ok {
		return nil
	}
	refs := make(map[string]timeline.MediaReference, len(raw))
	for key, refAny := range raw {
		refMap, ok := refAny.(map[string]any)
		if !ok {
			continue
		}
		refs[key] = nil
		key := key
		if err := rs.resolveSlot(refMap, func(obj object.SerializableObject) error {
			ref, ok := obj.(timeline.MediaReference)
			if !ok {
				return registry.NewErrorWithSubject(registry.KindMalformedSchema, "media reference entry is not a MediaReference", obj.SchemaName())
			}
			refs[key] = ref
			return nil
		}); err != nil {
			return err
		}
	}
	if len(refs) == 0 {
		return nil
	}
	activeKey := clip.ActiveMediaReferenceKey()
	if _, ok := refs[activeKey]; !ok {
		for k := range refs {
			activeKey = k
			break
		}
	}
	return clip.SetMediaReferences(refs, activeKey)
}
