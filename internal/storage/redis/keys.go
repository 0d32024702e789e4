package redis

import "strconv"

// Key prefixes for all stored objects. Sequences provide the
// store-generated integer identifiers the relational schema would.
const (
	userSeqKey    = "seq:user"
	entrySeqKey   = "seq:entry"
	commentSeqKey = "seq:comment"
)

func userKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}

func usernameIndexKey(username string) string {
	return "username:" + username
}

func entryKey(id int64) string {
	return "entry:" + strconv.FormatInt(id, 10)
}

func authorEntriesKey(authorID int64) string {
	return "author:" + strconv.FormatInt(authorID, 10) + ":entries"
}

func commentKey(id int64) string {
	return "comment:" + strconv.FormatInt(id, 10)
}

func entryCommentsKey(entryID int64) string {
	return "entry:" + strconv.FormatInt(entryID, 10) + ":comments"
}

func userFavouritesKey(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10) + ":favourites"
}

func entryFavouritedByKey(entryID int64) string {
	return "entry:" + strconv.FormatInt(entryID, 10) + ":favouritedby"
}
