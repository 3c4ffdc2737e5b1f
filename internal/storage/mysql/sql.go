package mysql

// One table holds every collection; body is the whole document as JSON.
const upsertDocumentSQL = `
INSERT INTO documents
  (collection, id, body)
VALUES
  (?, ?, ?)
ON DUPLICATE KEY UPDATE
  body       = VALUES(body),
  updated_at = CURRENT_TIMESTAMP
`

const getDocumentSQL = `
SELECT body
FROM documents
WHERE collection = ? AND id = ?
`

const listDocumentsSQL = `
SELECT id, body
FROM documents
WHERE collection = ?
ORDER BY id
`

// Field path and value are both bound; the value is compared as JSON so
// strings, numbers and booleans all match their stored form.
const queryEqualSQL = `
SELECT id, body
FROM documents
WHERE collection = ? AND JSON_EXTRACT(body, ?) = CAST(? AS JSON)
ORDER BY id
`
