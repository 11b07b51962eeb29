// Package resize turns a stream of viewport width notifications into
// throttled column recomputations.
//
// A [Subscription] owns one [Source] and one throttle.Limiter. Every raw
// notification goes through the limiter, so a drag-resize that emits
// hundreds of widths recomputes at most once per window plus one trailing
// recompute with the final width. Closing the subscription, or letting
// Run return, releases both the source and any pending trailing call.
//
//	sub := resize.New(resize.NewChanSource(widths), func(w float64, cols int) {
//	    redraw(cols)
//	}, resize.Options{})
//	defer sub.Close()
//	err := sub.Run(ctx)
package resize
