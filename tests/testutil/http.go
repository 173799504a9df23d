package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase drives one handler call
type HTTPTestCase struct {
	Name   string
	Method string
	Path   string
	Body   any
	// Params are gin path parameters, e.g. {"id": "..."}
	Params  map[string]string
	Headers map[string]string
	// Role signs the request in when set
	Role           workforce.Role
	ExpectedStatus int
	// ExpectedError is the envelope error code, e.g. ERR_INVALID_INPUT
	ExpectedError string
	Setup         func(t *testing.T, tc *TestContext)
	Validate      func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs each case as a subtest against handler
func RunHTTPTestCases(t *testing.T, handler gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handler, tc)
		})
	}
}

// RunHTTPTestCase runs a single case
func RunHTTPTestCase(t *testing.T, handler gin.HandlerFunc, tc HTTPTestCase) *TestContext {
	t.Helper()

	var body io.Reader
	if tc.Body != nil {
		body = ToJSONReader(t, tc.Body)
	}
	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}
	req := httptest.NewRequest(method, path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	c.Request = req
	testCtx := &TestContext{Context: c, Recorder: w, Engine: engine}
	for k, v := range tc.Params {
		testCtx.SetParam(k, v)
	}
	if tc.Role != "" {
		testCtx.SignIn(tc.Role)
	}
	if tc.Setup != nil {
		tc.Setup(t, testCtx)
	}

	handler(c)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "Unexpected status code: %s", w.Body.String())
	}
	if tc.ExpectedError != "" {
		AssertErrorResponse(t, testCtx, tc.ExpectedError)
	}
	if tc.Validate != nil {
		tc.Validate(t, testCtx)
	}
	return testCtx
}

// Envelope mirrors the JSON body every API handler writes
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta"`
}

// JSONResponseAs decodes the envelope with Data typed as T
func JSONResponseAs[T any](t *testing.T, tc *TestContext) Envelope[T] {
	t.Helper()

	var result Envelope[T]
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "Failed to parse JSON response: %s", tc.ResponseBody())
	return result
}

// JSONResponse decodes the body into a generic map
func JSONResponse(t *testing.T, tc *TestContext) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "Failed to parse JSON response")
	return result
}

// AssertSuccessResponse asserts a success envelope
func AssertSuccessResponse(t *testing.T, tc *TestContext) {
	t.Helper()

	resp := JSONResponseAs[json.RawMessage](t, tc)
	assert.True(t, resp.Success, "Expected success to be true")
	assert.Nil(t, resp.Error, "Expected no error")
}

// AssertErrorResponse asserts a failure envelope with the given code
func AssertErrorResponse(t *testing.T, tc *TestContext, expectedCode string) {
	t.Helper()

	resp := JSONResponseAs[json.RawMessage](t, tc)
	assert.False(t, resp.Success, "Expected success to be false")
	require.NotNil(t, resp.Error, "Expected error object in response")
	assert.Equal(t, expectedCode, resp.Error.Code, "Unexpected error code")
}

// ToJSONReader marshals v into a reader
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
