// Package remote provides an EditBackend adapter for the Kavach PDF service.
//
// Edits are posted as multipart/form-data to {base}/pdf/edit-pdf with the
// source document in the "file" part and the JSON instruction array in the
// "edits" field. Results are fetched from {base}/pdf/download/{name}.
//
// Requests are paced by a token bucket and back off when the service
// answers 429 Too Many Requests.
package remote
