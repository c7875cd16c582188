package predictor

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

const defaultMaxSeqLen = 128

// EncoderConfig wraps the paths required to bring up the ONNX session.
type EncoderConfig struct {
	OrtDLL        string
	ModelPath     string
	TokenizerPath string
	MaxSeqLen     int
}

// Encoder tokenizes text and runs it through the ONNX classification model,
// returning softmaxed per-class scores. A single encoder is read-only after
// construction; Run calls are serialized internally.
type Encoder struct {
	mu         sync.Mutex
	session    *ort.DynamicAdvancedSession
	tk         *tokenizer.Tokenizer
	inputNames []string
	maxSeqLen  int
}

// NewEncoder loads the tokenizer and creates the inference session. This is
// the blocking part of application startup and may take seconds.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) {
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = defaultMaxSeqLen
	}
	if cfg.OrtDLL != "" {
		ort.SetSharedLibraryPath(cfg.OrtDLL)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnx runtime: %w", err)
		}
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("inspect model: %w", err)
	}
	if len(outputs) == 0 {
		return nil, errors.New("model declares no outputs")
	}
	inputNames := make([]string, len(inputs))
	for i, in := range inputs {
		switch in.Name {
		case "input_ids", "attention_mask", "token_type_ids":
			inputNames[i] = in.Name
		default:
			return nil, fmt.Errorf("unsupported model input %q", in.Name)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		inputNames, []string{outputs[0].Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &Encoder{
		session:    session,
		tk:         tk,
		inputNames: inputNames,
		maxSeqLen:  cfg.MaxSeqLen,
	}, nil
}

// Close releases the ONNX session and runtime environment.
func (e *Encoder) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		if err := e.session.Destroy(); err != nil {
			return err
		}
		e.session = nil
	}
	return ort.DestroyEnvironment()
}

// Encode runs one text through the model and returns a probability per class.
func (e *Encoder) Encode(text string) ([]float32, error) {
	if e == nil || e.session == nil {
		return nil, errors.New("encoder is not initialized")
	}
	encoding, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	if len(encoding.Ids) == 0 {
		return nil, errors.New("tokenizer produced no tokens")
	}
	seqLen := len(encoding.Ids)
	if seqLen > e.maxSeqLen {
		seqLen = e.maxSeqLen
	}
	ids := fitLength(encoding.Ids, seqLen)
	mask := fitLength(encoding.AttentionMask, seqLen)
	typeIds := fitLength(encoding.TypeIds, seqLen)

	shape := ort.NewShape(1, int64(seqLen))
	inputs := make([]ort.Value, 0, len(e.inputNames))
	defer func() {
		for _, in := range inputs {
			in.Destroy()
		}
	}()
	for _, name := range e.inputNames {
		var data []int
		switch name {
		case "input_ids":
			data = ids
		case "attention_mask":
			data = mask
		case "token_type_ids":
			data = typeIds
		}
		tensor, err := ort.NewTensor(shape, toInt64(data))
		if err != nil {
			return nil, fmt.Errorf("create %s tensor: %w", name, err)
		}
		inputs = append(inputs, tensor)
	}

	outputs := []ort.Value{nil}
	e.mu.Lock()
	err = e.session.Run(inputs, outputs)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("model output is not a float32 tensor")
	}
	logits := logitsTensor.GetData()
	if len(logits) == 0 {
		return nil, errors.New("model produced no scores")
	}
	return softmax(logits), nil
}

// fitLength truncates or zero-pads vals to exactly n entries so every model
// input matches the batch shape even when the tokenizer omits a sequence.
func fitLength(vals []int, n int) []int {
	out := make([]int, n)
	copy(out, vals)
	return out
}

func toInt64(values []int) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}

// softmax converts logits to probabilities. The max is subtracted first so
// large logits cannot overflow the exponential.
func softmax(logits []float32) []float32 {
	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}
	exps := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		exps[i] = math.Exp(float64(v - max))
		sum += exps[i]
	}
	out := make([]float32, len(logits))
	for i, v := range exps {
		out[i] = float32(v / sum)
	}
	return out
}
