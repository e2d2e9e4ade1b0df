package http

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/bridge/internal/relay"
)

// DecodeRequest converts a JSON-shaped argument map into a relay.Request.
// url and method must be present strings; their values are not validated
// here. headers and body may be absent or null.
func DecodeRequest(params map[string]interface{}) (relay.Request, error) {
	var req relay.Request

	urlStr, err := getString(params, "url")
	if err != nil {
		return req, err
	}
	method, err := getString(params, "method")
	if err != nil {
		return req, err
	}
	req.URL = urlStr
	req.Method = method

	headers, err := getHeaders(params)
	if err != nil {
		return req, err
	}
	req.Headers = headers

	if val, ok := params["body"]; ok && val != nil {
		body, ok := val.(string)
		if !ok {
			return req, fmt.Errorf("body must be string")
		}
		req.Body = &body
	}

	return req, nil
}

// getString extracts a required string parameter
func getString(params map[string]interface{}, key string) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return "", fmt.Errorf("missing required key %s", key)
	}
	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", key)
	}
	return str, nil
}

// getHeaders extracts the optional ordered header list
func getHeaders(params map[string]interface{}) ([]relay.Header, error) {
	val, ok := params["headers"]
	if !ok || val == nil {
		return nil, nil
	}

	switch list := val.(type) {
	case []relay.Header:
		return list, nil
	case [][]string:
		headers := make([]relay.Header, 0, len(list))
		for i, pair := range list {
			if len(pair) != 2 {
				return nil, fmt.Errorf("headers[%d] must be a [name, value] pair", i)
			}
			headers = append(headers, relay.Header{Name: pair[0], Value: pair[1]})
		}
		return headers, nil
	case []interface{}:
		headers := make([]relay.Header, 0, len(list))
		for i, item := range list {
			pair, ok := item.([]interface{})
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("headers[%d] must be a [name, value] pair", i)
			}
			name, nameOK := pair[0].(string)
			value, valueOK := pair[1].(string)
			if !nameOK || !valueOK {
				return nil, fmt.Errorf("headers[%d] must contain strings", i)
			}
			headers = append(headers, relay.Header{Name: name, Value: value})
		}
		return headers, nil
	default:
		return nil, fmt.Errorf("headers must be an array of [name, value] pairs")
	}
}
