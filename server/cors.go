package server

import (
	"strconv"
	"strings"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/traits"
	"github.com/relaywire/relay/transport"
)

// applyCORS stamps Access-Control-* response headers onto resp per spec
// §4.5, when svc's schema carries the cors trait and req carried a
// non-empty Origin header. It is a no-op otherwise, so callers can run it
// unconditionally after every invocation.
func applyCORS(req *Request, svc *Service, resp *Response) {
	if req.Origin == "" || svc == nil || svc.Schema == nil {
		return
	}
	cors, ok := relay.SchemaTrait[*traits.CORS](svc.Schema)
	if !ok {
		return
	}

	allowOrigin := resolveAllowOrigin(cors.Origin, req.Origin)
	if allowOrigin == "" {
		return
	}

	resp.Fields.Set(transport.NewField("Access-Control-Allow-Origin").WithValue(allowOrigin))
	resp.Fields.Set(transport.NewField("Access-Control-Allow-Methods").WithValue("POST"))

	allowHeaders := append([]string{"Content-Type", "Smithy-Protocol", "X-Amz-Target"}, cors.AdditionalAllowedHeaders...)
	resp.Fields.Set(transport.NewField("Access-Control-Allow-Headers").WithValue(strings.Join(allowHeaders, ", ")))

	maxAge := cors.MaxAge
	if maxAge == 0 {
		maxAge = 600
	}
	resp.Fields.Set(transport.NewField("Access-Control-Max-Age").WithValue(strconv.Itoa(maxAge)))

	if len(cors.AdditionalExposedHeaders) > 0 {
		resp.Fields.Set(transport.NewField("Access-Control-Expose-Headers").WithValue(strings.Join(cors.AdditionalExposedHeaders, ", ")))
	}
}

// resolveAllowOrigin implements the "Allow-Origin reflects the request
// origin when the configured value is * or matches (case-insensitively,
// comma-separated list)" rule.
func resolveAllowOrigin(configured, requestOrigin string) string {
	if configured == "*" {
		return requestOrigin
	}
	for _, candidate := range strings.Split(configured, ",") {
		if strings.EqualFold(strings.TrimSpace(candidate), requestOrigin) {
			return requestOrigin
		}
	}
	return ""
}
