// Package ink is the vector annotation engine behind the slide overlay.
//
// Pointer samples arrive in viewport pixels. A Normalizer maps them into a
// fixed drawing space (2560x1440 by default) through the inverse of the
// transform used to render that space onto the surface, so stored strokes
// keep their place on the slide when the window is resized or rotated.
//
// The Controller routes samples by Mode:
//   - draw: a Recorder builds one stroke per gesture, dropping samples
//     closer than the decimation distance; taps are discarded.
//   - erase: an Eraser removes every stroke with a point inside the erase
//     radius of the sample.
//   - highlight and inert never touch the session.
//
// Only one gesture runs at a time. Draw and erase accept a single device
// class (a stylus by default) so a resting hand leaves no marks.
package ink
