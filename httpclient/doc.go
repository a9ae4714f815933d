// Package httpclient provides the HTTP client used to talk to the model
// sidecars (whisper, pyannote) and other external services.
//
// It handles authentication, per-client TLS, multipart uploads, typed
// error classification, and opt-in retry. Retry is disabled unless the
// client's config carries a RetryConfig.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:9000",
//	    Timeout: 5 * time.Minute,
//	    Auth:    httpclient.BearerAuth(token),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/transcribe",
//	    Body: &httpclient.MultipartBody{
//	        Fields: map[string]string{"language": "sv"},
//	        Files: []httpclient.FileField{
//	            {FieldName: "file", FileName: "audio.wav", Reader: f},
//	        },
//	    },
//	})
package httpclient
