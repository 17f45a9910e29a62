package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process payloads already have the right
// type; payloads that went through serialization are converted with a JSON round trip.
func DecodePayload[T any](input any) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
