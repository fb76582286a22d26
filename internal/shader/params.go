package shader

// Parameters are a program's resource bindings. Index fields are packed
// byte offsets for vectors and matrices and binding slots for the rest.
type Parameters struct {
	VectorParams           []VectorParameter  `json:"vector_params,omitempty"`
	MatrixParams           []MatrixParameter  `json:"matrix_params,omitempty"`
	TextureParams          []TextureParameter `json:"texture_params,omitempty"`
	BufferParams           []BufferBinding    `json:"buffer_params,omitempty"`
	ConstantBuffers        []ConstantBuffer   `json:"constant_buffers,omitempty"`
	ConstantBufferBindings []BufferBinding    `json:"constant_buffer_bindings,omitempty"`
	UAVParams              []UAVParameter     `json:"uav_params,omitempty"`
	Samplers               []SamplerParameter `json:"samplers,omitempty"`
}

type VectorParameter struct {
	NameIndex int32 `json:"name_index"`
	Index     int32 `json:"index"`
	ArraySize int32 `json:"array_size,omitempty"`
	Type      int8  `json:"type,omitempty"`
	Dim       int8  `json:"dim,omitempty"`
}

type MatrixParameter struct {
	NameIndex int32 `json:"name_index"`
	Index     int32 `json:"index"`
	ArraySize int32 `json:"array_size,omitempty"`
	Type      int8  `json:"type,omitempty"`
	RowCount  int8  `json:"row_count,omitempty"`
}

type TextureParameter struct {
	NameIndex    int32 `json:"name_index"`
	Index        int32 `json:"index"`
	SamplerIndex int32 `json:"sampler_index,omitempty"`
	MultiSampled bool  `json:"multi_sampled,omitempty"`
	Dim          int8  `json:"dim,omitempty"`
}

type BufferBinding struct {
	NameIndex int32 `json:"name_index"`
	Index     int32 `json:"index"`
	ArraySize int32 `json:"array_size,omitempty"`
}

type UAVParameter struct {
	NameIndex     int32 `json:"name_index"`
	Index         int32 `json:"index"`
	OriginalIndex int32 `json:"original_index,omitempty"`
}

type SamplerParameter struct {
	Sampler   uint32 `json:"sampler"`
	BindPoint int32  `json:"bind_point"`
}

// ConstantBuffer groups the vector and matrix parameters laid out in one
// constant buffer.
type ConstantBuffer struct {
	NameIndex    int32             `json:"name_index"`
	MatrixParams []MatrixParameter `json:"matrix_params,omitempty"`
	VectorParams []VectorParameter `json:"vector_params,omitempty"`
	Size         int32             `json:"size,omitempty"`
	IsPartialCB  bool              `json:"is_partial_cb,omitempty"`
}
