package awsjson10

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/relaywire/relay"
	smithyjson "github.com/relaywire/relay/codec/json"
	smithyio "github.com/relaywire/relay/io"
	"github.com/relaywire/relay/middleware"
	smithyhttp "github.com/relaywire/relay/transport/http"
)

// New returns an instance of the awsJson 1.0 protocol.
func New() *Protocol {
	return &Protocol{
		codec: &smithyjson.Codec{
			UseJSONName:     false, // awsJson1.0 ignores this
			TimestampFormat: "epoch-seconds",
		},
	}
}

// Protocol implements aws.protocols#awsJson10.
type Protocol struct {
	UseQueryCompatible bool

	codec *smithyjson.Codec
}

var _ relay.ClientProtocol[*smithyhttp.Request, *smithyhttp.Response] = (*Protocol)(nil)

// ID identifies the protocol.
func (*Protocol) ID() string {
	return "aws.protocols#awsJson10"
}

// SerializeRequest serializes a request for AWS Json 1.0.
func (p *Protocol) SerializeRequest(
	ctx context.Context,
	in relay.Serializable,
	req *smithyhttp.Request,
) error {
	req.Method = http.MethodPost
	req.Header.Set("X-Amz-Target", fmt.Sprintf("%s.%s", middleware.GetServiceName(ctx), middleware.GetOperationName(ctx)))
	req.Header.Set("Content-Type", "application/x-amz-json-1.0")
	if p.UseQueryCompatible {
		req.Header.Set("X-Amzn-Query-Compatible", "true")
	}

	ss := p.codec.Serializer()
	in.Serialize(ss)

	sreq, err := req.SetStream(bytes.NewReader(ss.Bytes()))
	if err != nil {
		return fmt.Errorf("set stream: %w", err)
	}

	*req = *sreq
	return nil
}

// DeserializeResponse deserializes a response for AWS Json 1.0.
func (p *Protocol) DeserializeResponse(
	ctx context.Context,
	types *relay.TypeRegistry,
	resp *smithyhttp.Response,
	out relay.Deserializable,
) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return p.deserializeError(types, resp)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &relay.DeserializationError{Err: err}
	}

	sd := p.codec.Deserializer(payload)
	if err := out.Deserialize(sd); err != nil {
		return &relay.DeserializationError{Err: err}
	}

	return nil
}

// TODO get the intermediate reader out of this thing and just operate on the
// bytes, it's way easier
func (p *Protocol) deserializeError(types *relay.TypeRegistry, response *smithyhttp.Response) error {
	var errorBuffer bytes.Buffer
	if _, err := io.Copy(&errorBuffer, response.Body); err != nil {
		return &relay.DeserializationError{Err: fmt.Errorf("failed to copy error response body, %w", err)}
	}
	errorBody := bytes.NewReader(errorBuffer.Bytes())

	errorCode := "UnknownError"
	errorMessage := errorCode

	var headerCode string
	if p.UseQueryCompatible {
		headerCode = response.Header.Get("X-Amzn-ErrorType")
	}

	var buff [1024]byte
	ringBuffer := smithyio.NewRingBuffer(buff[:])

	body := io.TeeReader(errorBody, ringBuffer)
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	bodyInfo, err := getProtocolErrorInfo(decoder)
	if err != nil {
		var snapshot bytes.Buffer
		io.Copy(&snapshot, ringBuffer)
		err = &relay.DeserializationError{
			Err:      fmt.Errorf("failed to decode response body, %w", err),
			Snapshot: snapshot.Bytes(),
		}
		return err
	}

	errorBody.Seek(0, io.SeekStart)
	if typ, ok := resolveProtocolErrorType(headerCode, bodyInfo); ok {
		errorCode = typ
	}
	if len(bodyInfo.Message) != 0 {
		errorMessage = bodyInfo.Message
	}

	perr, ok := types.DeserializableError(errorCode)
	if !ok {
		return &relay.GenericAPIError{
			Code:    errorCode,
			Message: errorMessage,
		}

	}

	errorBody.Seek(0, io.SeekStart)
	errorBytes, _ := io.ReadAll(errorBody)
	deser := p.codec.Deserializer(errorBytes)
	if err := perr.Deserialize(deser); err != nil {
		return &relay.DeserializationError{Err: err}
	}

	return perr
}

type protocolErrorInfo struct {
	Type    string `json:"__type"`
	Message string

	// nonstandard, but some AWS services do present the type here
	Code any
}

func getProtocolErrorInfo(decoder *json.Decoder) (protocolErrorInfo, error) {
	var errInfo protocolErrorInfo
	if err := decoder.Decode(&errInfo); err != nil {
		if err == io.EOF {
			return errInfo, nil
		}
		return errInfo, err
	}

	return errInfo, nil
}

func resolveProtocolErrorType(headerType string, bodyInfo protocolErrorInfo) (string, bool) {
	if len(headerType) != 0 {
		return headerType, true
	} else if len(bodyInfo.Type) != 0 {
		return bodyInfo.Type, true
	} else if code, ok := bodyInfo.Code.(string); ok && len(code) != 0 {
		return code, true
	}
	return "", false
}
