package recognizer

import "math"

// The nets emit one class distribution per horizontal step over the
// crop: classes 0-9 are digits, class 10 is the CTC blank.
const blankClass = 10

// softmax normalizes one step's logits in place-safe fashion.
func softmax(logits []float32) []float64 {
	probs := make([]float64, len(logits))
	max := float64(logits[0])
	for _, v := range logits[1:] {
		if float64(v) > max {
			max = float64(v)
		}
	}
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(float64(v) - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// decode greedily collapses per-step distributions into a digit string:
// argmax each step, merge repeats, drop blanks. The confidence is the
// mean probability of the steps that emitted a digit.
func decode(steps [][]float32) (string, float64) {
	var digits []byte
	var confSum float64
	var emitted int

	prev := blankClass
	for _, step := range steps {
		if len(step) == 0 {
			continue
		}
		probs := softmax(step)
		class := 0
		for i, p := range probs {
			if p > probs[class] {
				class = i
			}
		}

		if class != blankClass && class != prev {
			if class < 10 {
				digits = append(digits, byte('0'+class))
				confSum += probs[class]
				emitted++
			}
		}
		prev = class
	}

	if emitted == 0 {
		return "", 0
	}
	return string(digits), confSum / float64(emitted)
}
