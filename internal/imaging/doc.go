// Package imaging holds the raster operations behind image normalization:
// decode guards, flattening onto white, EXIF orientation and bounded
// resampling. All functions return new images with a zero origin and never
// modify their input.
package imaging
