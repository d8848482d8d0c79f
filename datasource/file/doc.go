// Package file provides a DataSource which reads MNIST-formatted IDX files from a directory on disk.
// Each split is stored as a pair of files: a label file and an image file. Files may be stored
// plain, or compressed with gzip (.gz), zstd (.zst) or lz4 (.lz4), in which case they are
// decompressed transparently.
package file
