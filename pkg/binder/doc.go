// Package binder populates request structs from the parts of an HTTP
// request.
//
// Each binder handles one source and is applied in order by handler.Wrap:
//
//	type CreateVariableRequest struct {
//		TemplateID string `path:"templateID" json:"-"`
//		Selected   string `json:"selected_text"`
//		Preview    bool   `query:"preview" json:"-"`
//	}
//
//	handler.Wrap(h, handler.WithBinders[handler.Context, CreateVariableRequest](
//		binder.Path(chi.URLParam),
//		binder.Query(),
//		binder.JSON(),
//	))
//
// JSON decodes strictly (unknown fields are rejected) and leaves string
// values byte-for-byte as sent, since request bodies carry raw HTML. A
// request without a body reports ErrBinderNotApplicable so bodiless
// operations can share a request type with the others.
package binder
