package tflite

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// Accessors for the subset of the TFLite schema (tensorflow/lite/schema/schema.fbs) needed
// to describe a model's signature. Field offsets are vtable slots: 4 + 2*field index.

const (
	modelVersion     = 4
	modelSubgraphs   = 8
	modelDescription = 10

	subGraphTensors = 4
	subGraphInputs  = 6
	subGraphOutputs = 8
	subGraphName    = 12

	tensorShape = 4
	tensorType  = 6
	tensorName  = 10
)

type model struct {
	tab flatbuffers.Table
}

func rootAsModel(buf []byte) *model {
	n := flatbuffers.GetUOffsetT(buf)
	m := &model{}
	m.tab.Bytes = buf
	m.tab.Pos = n
	return m
}

func (m *model) version() uint32 {
	if o := flatbuffers.UOffsetT(m.tab.Offset(modelVersion)); o != 0 {
		return m.tab.GetUint32(o + m.tab.Pos)
	}
	return 0
}

func (m *model) description() string {
	if o := flatbuffers.UOffsetT(m.tab.Offset(modelDescription)); o != 0 {
		return m.tab.String(o + m.tab.Pos)
	}
	return ""
}

func (m *model) subgraphsLength() int {
	if o := flatbuffers.UOffsetT(m.tab.Offset(modelSubgraphs)); o != 0 {
		return m.tab.VectorLen(o)
	}
	return 0
}

func (m *model) subgraph(j int) *subGraph {
	o := flatbuffers.UOffsetT(m.tab.Offset(modelSubgraphs))
	if o == 0 {
		return nil
	}
	x := m.tab.Vector(o) + flatbuffers.UOffsetT(j)*flatbuffers.SizeUOffsetT
	return &subGraph{tab: flatbuffers.Table{Bytes: m.tab.Bytes, Pos: m.tab.Indirect(x)}}
}

type subGraph struct {
	tab flatbuffers.Table
}

func (s *subGraph) name() string {
	if o := flatbuffers.UOffsetT(s.tab.Offset(subGraphName)); o != 0 {
		return s.tab.String(o + s.tab.Pos)
	}
	return ""
}

func (s *subGraph) tensorsLength() int {
	if o := flatbuffers.UOffsetT(s.tab.Offset(subGraphTensors)); o != 0 {
		return s.tab.VectorLen(o)
	}
	return 0
}

func (s *subGraph) tensor(j int) *tensor {
	o := flatbuffers.UOffsetT(s.tab.Offset(subGraphTensors))
	if o == 0 {
		return nil
	}
	x := s.tab.Vector(o) + flatbuffers.UOffsetT(j)*flatbuffers.SizeUOffsetT
	return &tensor{tab: flatbuffers.Table{Bytes: s.tab.Bytes, Pos: s.tab.Indirect(x)}}
}

func (s *subGraph) inputs() []int32 {
	return int32Vector(&s.tab, subGraphInputs)
}

func (s *subGraph) outputs() []int32 {
	return int32Vector(&s.tab, subGraphOutputs)
}

type tensor struct {
	tab flatbuffers.Table
}

func (t *tensor) name() string {
	if o := flatbuffers.UOffsetT(t.tab.Offset(tensorName)); o != 0 {
		return t.tab.String(o + t.tab.Pos)
	}
	return ""
}

func (t *tensor) tensorType() TensorType {
	if o := flatbuffers.UOffsetT(t.tab.Offset(tensorType)); o != 0 {
		return TensorType(t.tab.GetInt8(o + t.tab.Pos))
	}
	return Float32
}

func (t *tensor) shape() []int32 {
	return int32Vector(&t.tab, tensorShape)
}

func int32Vector(tab *flatbuffers.Table, slot flatbuffers.VOffsetT) []int32 {
	o := flatbuffers.UOffsetT(tab.Offset(slot))
	if o == 0 {
		return nil
	}
	n := tab.VectorLen(o)
	start := tab.Vector(o)
	out := make([]int32, n)
	for i := range out {
		out[i] = tab.GetInt32(start + flatbuffers.UOffsetT(i)*flatbuffers.SizeInt32)
	}
	return out
}
