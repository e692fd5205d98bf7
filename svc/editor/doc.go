// Package editor runs the editing gestures of the template editor: marking
// a text selection or an image as a variable, removing variables, managing
// sections and rendering previews.
//
// Every gesture loads the template through the account scope, computes the
// new raw HTML with pkg/placeholder and hands rows and HTML to the catalog
// in one atomic write. When the selection or image cannot be located no
// write happens and ErrSelectionNotFound or ErrImageNotFound is returned.
//
//	svc := editor.NewService(store,
//		editor.WithLogger(log),
//		editor.WithPreviewCache(editor.NewLRUPreviewCache(256, 10*time.Minute)),
//	)
//	v, err := svc.CreateTextVariable(ctx, scope, editor.CreateTextVariableParams{
//		SectionID:       sectionID,
//		SelectedText:    "World",
//		SelectionOffset: &offset,
//	})
//
// The occurrence of a repeated selection is taken from OccurrenceIndex when
// set, otherwise derived from SelectionOffset, a rune offset into the
// visible text of the preview the user selected from.
package editor
