package disasm

import "github.com/gogpu/naga/spirv"

// Opcodes without a named constant in the spirv package.
const (
	opString            spirv.OpCode = 7
	opExtInst           spirv.OpCode = 12
	opTypeImage         spirv.OpCode = 25
	opConstantTrue      spirv.OpCode = 41
	opFunctionCall      spirv.OpCode = 57
	opSampledImage      spirv.OpCode = 86
	opImageQuerySamples spirv.OpCode = 107
	opPhi               spirv.OpCode = 245
)

// opNames covers the opcodes Unity's shader compilers emit.
var opNames = map[uint16]string{
	0: "OpNop", 1: "OpUndef", 3: "OpSource", 4: "OpSourceExtension", 5: "OpName",
	6: "OpMemberName", 7: "OpString", 8: "OpLine", 10: "OpExtension", 11: "OpExtInstImport",
	12: "OpExtInst", 14: "OpMemoryModel", 15: "OpEntryPoint", 16: "OpExecutionMode", 17: "OpCapability",

	19: "OpTypeVoid", 20: "OpTypeBool", 21: "OpTypeInt", 22: "OpTypeFloat", 23: "OpTypeVector",
	24: "OpTypeMatrix", 25: "OpTypeImage", 26: "OpTypeSampler", 27: "OpTypeSampledImage",
	28: "OpTypeArray", 29: "OpTypeRuntimeArray", 30: "OpTypeStruct", 32: "OpTypePointer",
	33: "OpTypeFunction",

	41: "OpConstantTrue", 42: "OpConstantFalse", 43: "OpConstant", 44: "OpConstantComposite",
	46: "OpConstantNull", 54: "OpFunction", 55: "OpFunctionParameter", 56: "OpFunctionEnd",
	57: "OpFunctionCall", 59: "OpVariable", 61: "OpLoad", 62: "OpStore", 65: "OpAccessChain",
	66: "OpInBoundsAccessChain", 71: "OpDecorate", 72: "OpMemberDecorate",

	77: "OpVectorExtractDynamic", 78: "OpVectorInsertDynamic", 79: "OpVectorShuffle",
	80: "OpCompositeConstruct", 81: "OpCompositeExtract", 82: "OpCompositeInsert",
	83: "OpCopyObject", 84: "OpTranspose",

	86: "OpSampledImage", 87: "OpImageSampleImplicitLod", 88: "OpImageSampleExplicitLod",
	89: "OpImageSampleDrefImplicitLod", 90: "OpImageSampleDrefExplicitLod",
	91: "OpImageSampleProjImplicitLod", 92: "OpImageSampleProjExplicitLod",
	95: "OpImageFetch", 96: "OpImageGather", 97: "OpImageDrefGather", 98: "OpImageRead",
	99: "OpImageWrite", 100: "OpImage", 103: "OpImageQuerySizeLod", 104: "OpImageQuerySize",
	105: "OpImageQueryLod", 106: "OpImageQueryLevels", 107: "OpImageQuerySamples",

	109: "OpConvertFToU", 110: "OpConvertFToS", 111: "OpConvertSToF", 112: "OpConvertUToF",
	113: "OpUConvert", 114: "OpSConvert", 115: "OpFConvert", 124: "OpBitcast",
	126: "OpSNegate", 127: "OpFNegate", 128: "OpIAdd", 129: "OpFAdd", 130: "OpISub",
	131: "OpFSub", 132: "OpIMul", 133: "OpFMul", 134: "OpUDiv", 135: "OpSDiv", 136: "OpFDiv",
	137: "OpUMod", 138: "OpSRem", 139: "OpSMod", 140: "OpFRem", 141: "OpFMod",
	142: "OpVectorTimesScalar", 143: "OpMatrixTimesScalar", 144: "OpVectorTimesMatrix",
	145: "OpMatrixTimesVector", 146: "OpMatrixTimesMatrix", 147: "OpOuterProduct", 148: "OpDot",

	154: "OpAny", 155: "OpAll", 156: "OpIsNan", 157: "OpIsInf",
	164: "OpLogicalEqual", 165: "OpLogicalNotEqual", 166: "OpLogicalOr", 167: "OpLogicalAnd",
	168: "OpLogicalNot", 169: "OpSelect", 170: "OpIEqual", 171: "OpINotEqual",
	172: "OpUGreaterThan", 173: "OpSGreaterThan", 174: "OpUGreaterThanEqual", 175: "OpSGreaterThanEqual",
	176: "OpULessThan", 177: "OpSLessThan", 178: "OpULessThanEqual", 179: "OpSLessThanEqual",
	180: "OpFOrdEqual", 181: "OpFUnordEqual", 182: "OpFOrdNotEqual", 183: "OpFUnordNotEqual",
	184: "OpFOrdLessThan", 185: "OpFUnordLessThan", 186: "OpFOrdGreaterThan", 187: "OpFUnordGreaterThan",
	188: "OpFOrdLessThanEqual", 189: "OpFUnordLessThanEqual", 190: "OpFOrdGreaterThanEqual",
	191: "OpFUnordGreaterThanEqual",

	194: "OpShiftRightLogical", 195: "OpShiftRightArithmetic", 196: "OpShiftLeftLogical",
	197: "OpBitwiseOr", 198: "OpBitwiseXor", 199: "OpBitwiseAnd", 200: "OpNot",
	207: "OpDPdx", 208: "OpDPdy", 209: "OpFwidth",
	218: "OpEmitVertex", 219: "OpEndPrimitive",

	245: "OpPhi", 246: "OpLoopMerge", 247: "OpSelectionMerge", 248: "OpLabel", 249: "OpBranch",
	250: "OpBranchConditional", 251: "OpSwitch", 252: "OpKill", 253: "OpReturn",
	254: "OpReturnValue", 255: "OpUnreachable",
}

var capabilityNames = map[uint32]string{
	0: "Matrix", 1: "Shader", 2: "Geometry", 3: "Tessellation", 9: "Float16", 10: "Float64",
	11: "Int64", 22: "Int16", 32: "ClipDistance", 33: "CullDistance", 34: "ImageCubeArray",
	35: "SampleRateShading", 40: "InputAttachment", 43: "MinLod", 50: "ImageQuery",
	51: "DerivativeControl", 52: "InterpolationFunction", 57: "MultiViewport",
	4427: "DrawParameters", 4439: "MultiView",
}

var addressingNames = map[uint32]string{0: "Logical", 1: "Physical32", 2: "Physical64", 5348: "PhysicalStorageBuffer64"}

var memoryModelNames = map[uint32]string{0: "Simple", 1: "GLSL450", 2: "OpenCL", 3: "Vulkan"}

var executionModelNames = map[uint32]string{
	0: "Vertex", 1: "TessellationControl", 2: "TessellationEvaluation",
	3: "Geometry", 4: "Fragment", 5: "GLCompute", 6: "Kernel",
}

var executionModeNames = map[uint32]string{
	0: "Invocations", 1: "SpacingEqual", 2: "SpacingFractionalEven", 3: "SpacingFractionalOdd",
	4: "VertexOrderCw", 5: "VertexOrderCcw", 6: "PixelCenterInteger", 7: "OriginUpperLeft",
	8: "OriginLowerLeft", 9: "EarlyFragmentTests", 10: "PointMode", 11: "Xfb",
	12: "DepthReplacing", 14: "DepthGreater", 15: "DepthLess", 16: "DepthUnchanged",
	17: "LocalSize", 19: "InputPoints", 20: "InputLines", 21: "InputLinesAdjacency",
	22: "Triangles", 23: "InputTrianglesAdjacency", 24: "Quads", 25: "Isolines",
	26: "OutputVertices", 27: "OutputPoints", 28: "OutputLineStrip", 29: "OutputTriangleStrip",
}

var sourceLanguageNames = map[uint32]string{0: "Unknown", 1: "ESSL", 2: "GLSL", 3: "OpenCL_C", 4: "OpenCL_CPP", 5: "HLSL"}

var storageClassNames = map[uint32]string{
	0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output",
	4: "Workgroup", 5: "CrossWorkgroup", 6: "Private", 7: "Function",
	8: "Generic", 9: "PushConstant", 10: "AtomicCounter", 11: "Image",
	12: "StorageBuffer",
}

var decorationNames = map[uint32]string{
	0: "RelaxedPrecision", 1: "SpecId", 2: "Block", 3: "BufferBlock", 4: "RowMajor",
	5: "ColMajor", 6: "ArrayStride", 7: "MatrixStride", 11: "BuiltIn", 13: "NoPerspective",
	14: "Flat", 15: "Patch", 16: "Centroid", 18: "Invariant", 24: "NonWritable",
	25: "NonReadable", 30: "Location", 31: "Component", 32: "Index", 33: "Binding",
	34: "DescriptorSet", 35: "Offset",
}

var builtinNames = map[uint32]string{
	0: "Position", 1: "PointSize", 3: "ClipDistance", 4: "CullDistance", 5: "VertexId",
	6: "InstanceId", 7: "PrimitiveId", 8: "InvocationId", 9: "Layer", 10: "ViewportIndex",
	15: "FragCoord", 16: "PointCoord", 17: "FrontFacing", 18: "SampleId",
	20: "SampleMask", 22: "FragDepth", 42: "VertexIndex", 43: "InstanceIndex",
}
