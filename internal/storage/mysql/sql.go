package mysql

const insertReviewSQL = `
INSERT INTO reviews
  (park, author, rating, original_comment, translated_comment, sentiment, language, needs_manual_review, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
`

const reviewColumns = `
  id,
  park,
  author,
  rating,
  original_comment,
  translated_comment,
  sentiment,
  language,
  needs_manual_review,
  created_at`

const listByParkSQL = `
SELECT` + reviewColumns + `
FROM reviews
WHERE park = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// scanPendingSQL picks up rows the backfill pass still owes annotations:
// no score, no detected language, or a translatable language with no result.
const scanPendingSQL = `
SELECT` + reviewColumns + `
FROM reviews
WHERE sentiment IS NULL
   OR language IS NULL
   OR (language NOT IN ('en', 'unknown') AND translated_comment IS NULL)
ORDER BY id
`

const insertMissSQL = `
INSERT INTO translation_misses (review_id, http_status, reason)
VALUES (?, ?, ?)
`
