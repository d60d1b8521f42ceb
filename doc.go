// Package jsonapi provides HTTP middleware that enforces the media type
// negotiation rules of JSON:API and tags each request with the resource
// descriptor of its endpoint for later serialization stages.
//
// The rules are strict and deliberately narrow:
//
//   - If Accept lists application/vnd.api+json, at least one of those
//     entries must carry no parameters, otherwise the request is rejected
//     with 406 Not Acceptable. Wildcards never count as a match, and an
//     Accept header without the JSON:API media type is not rejected.
//   - A Content-Type with any media type parameter is rejected with 415
//     Unsupported Media Type. If both rules fire, the response is 415.
//
// Whatever the outcome, the endpoint's Resource is stored in the request
// context under ResourceDescriptorKey and can be read back with
// ResourceFromRequest, including from a RejectHandler.
//
// # Quick Start
//
//	people := jsonapi.MustSchema("people", Person{},
//		jsonapi.HasMany("articles", "articles"))
//
//	mux := http.NewServeMux()
//	mux.Handle("GET /people/{id}",
//		jsonapi.MustReturns(people, jsonapi.Options{})(showPerson))
//
//	http.ListenAndServe(":8080", mux)
//
// Routes can also be declared in a Registry and served through a single
// middleware wrapping the mux:
//
//	reg := jsonapi.NewRegistry()
//	reg.Get("GET /people/{id}").Returns(people).MustRegister()
//
//	wrapped := jsonapi.Middleware(jsonapi.Options{
//		Registry:     reg,
//		PathResolver: jsonapi.ServeMuxPathResolver(mux),
//		OnReject:     jsonapi.ErrorDocument,
//	})(mux)
package jsonapi
