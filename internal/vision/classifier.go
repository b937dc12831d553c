// Package vision runs the MobileNetV2 food classifier over ONNX Runtime.
package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"golang.org/x/image/draw"
)

// FoodLabels is the model's closed output vocabulary, index-aligned with the
// class-score vector.
var FoodLabels = []string{
	"apple_pie",
	"bread_pudding",
	"carrot_cake",
	"cheesecake",
	"chocolate_cake",
	"club_sandwich",
	"cup_cakes",
	"fish_and_chips",
	"french_fries",
	"fried_rice",
}

// ImageNet normalization (standard for torchvision models).
var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

const (
	width  = 224
	height = 224
)

// Classifier wraps ONNX inference behind the classify(bytes) -> label
// contract. The model is loaded lazily on first use; the session is not
// reentrant, so inference is serialized by the mutex.
type Classifier struct {
	mu sync.Mutex

	modelPath string
	libPath   string

	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	inited  bool
}

// NewClassifier creates a classifier for the ONNX model at modelPath.
// onnxLibPath optionally points at libonnxruntime.so.
func NewClassifier(modelPath, onnxLibPath string) *Classifier {
	return &Classifier{
		modelPath: modelPath,
		libPath:   onnxLibPath,
	}
}

func (c *Classifier) initLocked() error {
	if c.inited {
		return nil
	}

	if c.libPath != "" {
		ort.SetSharedLibraryPath(c.libPath)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("onnx init environment: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(c.modelPath)
	if err != nil {
		return fmt.Errorf("onnx get input/output info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return fmt.Errorf("onnx model has no inputs or outputs")
	}

	inputTensor, err := ort.NewEmptyTensor[float32](inputs[0].Dimensions)
	if err != nil {
		return fmt.Errorf("onnx new input tensor: %w", err)
	}
	c.input = inputTensor

	outputTensor, err := ort.NewEmptyTensor[float32](outputs[0].Dimensions)
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("onnx new output tensor: %w", err)
	}
	c.output = outputTensor

	inputNames := make([]string, len(inputs))
	for i := range inputs {
		inputNames[i] = inputs[i].Name
	}
	outputNames := make([]string, len(outputs))
	for i := range outputs {
		outputNames[i] = outputs[i].Name
	}

	session, err := ort.NewAdvancedSession(c.modelPath, inputNames, outputNames,
		[]ort.Value{c.input}, []ort.Value{c.output}, nil)
	if err != nil {
		outputTensor.Destroy()
		inputTensor.Destroy()
		return fmt.Errorf("onnx new session: %w", err)
	}
	c.session = session
	c.inited = true
	return nil
}

// Classify decodes the image bytes, preprocesses them for MobileNetV2, runs
// inference, and returns the top-1 label. No confidence threshold is applied:
// the argmax class is returned regardless of margin.
func (c *Classifier) Classify(imageData []byte) (string, error) {
	img, err := decodeImage(imageData)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	inputData := preprocess(img)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.initLocked(); err != nil {
		return "", err
	}

	inData := c.input.GetData()
	if len(inData) < len(inputData) {
		return "", fmt.Errorf("input tensor size %d < preprocessed %d", len(inData), len(inputData))
	}
	copy(inData, inputData)

	if err := c.session.Run(); err != nil {
		return "", fmt.Errorf("onnx run: %w", err)
	}

	outData := c.output.GetData()
	if len(outData) == 0 {
		return "", fmt.Errorf("onnx produced empty output")
	}

	best := argmax(outData)
	if best >= len(FoodLabels) {
		return "", fmt.Errorf("predicted class %d outside vocabulary", best)
	}
	return FoodLabels[best], nil
}

func argmax(scores []float32) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Try JPEG and PNG explicitly (image.Decode may not recognize some).
		img, err = jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			img, err = png.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
		}
	}
	return img, nil
}

// preprocess resizes img to 224x224 and lays it out as NCHW float32 with
// ImageNet normalization.
func preprocess(img image.Image) []float32 {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	out := make([]float32, 1*3*height*width)
	const size = width * height

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			px := dst.RGBAAt(x, y)
			r, g, b := float32(px.R)/255.0, float32(px.G)/255.0, float32(px.B)/255.0
			out[0*size+idx] = (r - imagenetMean[0]) / imagenetStd[0]
			out[1*size+idx] = (g - imagenetMean[1]) / imagenetStd[1]
			out[2*size+idx] = (b - imagenetMean[2]) / imagenetStd[2]
		}
	}
	return out
}
