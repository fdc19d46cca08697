package canon

// Abbreviated is the reading order used by the printed plan: each block of
// Old Testament books is followed by a gospel, then the epistles.
func Abbreviated() Canon {
	return Canon{
		{"Gen", 50}, {"Ex", 40}, {"Lev", 27}, {"Num", 36}, {"Deu", 34},
		{"Matt", 28},
		{"Joshua", 24}, {"Judges", 21}, {"Ruth", 4}, {"1 Sam", 31}, {"2 Sam", 24},
		{"1 Kings", 22}, {"2 Kings", 25}, {"1 Chron", 29}, {"2 Chron", 36},
		{"Ezra", 10}, {"Nehemiah", 13}, {"Esther", 10},
		{"Mark", 16},
		{"Job", 42}, {"Psalms", 150}, {"Prov", 31}, {"Eccles.", 12}, {"Song", 8},
		{"Luke", 24},
		{"Isaiah", 66}, {"Jer", 52}, {"Lam", 5}, {"Ezekiel", 48}, {"Daniel", 12},
		{"Hosea", 14}, {"Joel", 3}, {"Amos", 9}, {"Obd", 1}, {"Jonah", 4}, {"Micah", 7},
		{"Nahum", 3}, {"Hab", 3}, {"Zeph", 3}, {"Haggai", 2}, {"Zech.", 14}, {"Malachi", 4},
		{"John", 21},
		{"Acts", 28}, {"Romans", 16}, {"1 Cor", 16}, {"2 Cor", 13}, {"Gal", 6},
		{"Eph", 6}, {"Phil", 4}, {"Col", 4}, {"1 Thess", 5},
		{"2 Thess", 3}, {"1 Tim", 6}, {"2 Tim", 4}, {"Titus", 3}, {"Philemon", 1},
		{"Heb", 13}, {"James", 5}, {"1 Peter", 5}, {"2 Peter", 3}, {"1 Jn", 5},
		{"2 Jn", 1}, {"3 Jn", 1}, {"Jude", 1}, {"Rev", 22},
	}
}

// Full is Abbreviated with unabbreviated book names.
func Full() Canon {
	return Canon{
		{"Genesis", 50}, {"Exodus", 40}, {"Leviticus", 27}, {"Numbers", 36}, {"Deuteronomy", 34},
		{"Matthew", 28},
		{"Joshua", 24}, {"Judges", 21}, {"Ruth", 4}, {"1 Samuel", 31}, {"2 Samuel", 24},
		{"1 Kings", 22}, {"2 Kings", 25}, {"1 Chronicles", 29}, {"2 Chronicles", 36},
		{"Ezra", 10}, {"Nehemiah", 13}, {"Esther", 10},
		{"Mark", 16},
		{"Job", 42}, {"Psalms", 150}, {"Proverbs", 31}, {"Ecclesiastes", 12}, {"Song of Solomon", 8},
		{"Luke", 24},
		{"Isaiah", 66}, {"Jeremiah", 52}, {"Lamentations", 5}, {"Ezekiel", 48}, {"Daniel", 12},
		{"Hosea", 14}, {"Joel", 3}, {"Amos", 9}, {"Obadiah", 1}, {"Jonah", 4}, {"Micah", 7},
		{"Nahum", 3}, {"Habakkuk", 3}, {"Zephaniah", 3}, {"Haggai", 2}, {"Zechariah", 14}, {"Malachi", 4},
		{"John", 21},
		{"Acts", 28}, {"Romans", 16}, {"1 Corinthians", 16}, {"2 Corinthians", 13}, {"Galatians", 6},
		{"Ephesians", 6}, {"Philippians", 4}, {"Colossians", 4}, {"1 Thessalonians", 5},
		{"2 Thessalonians", 3}, {"1 Timothy", 6}, {"2 Timothy", 4}, {"Titus", 3}, {"Philemon", 1},
		{"Hebrews", 13}, {"James", 5}, {"1 Peter", 5}, {"2 Peter", 3}, {"1 John", 5},
		{"2 John", 1}, {"3 John", 1}, {"Jude", 1}, {"Revelation", 22},
	}
}
