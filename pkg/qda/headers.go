package qda

const headerLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// maxUniqueHeaders is the size of the A..ZZZ label space.
const maxUniqueHeaders = 26 + 26*26 + 26*26*26

// UniqueHeaders returns n distinct default column labels in spreadsheet
// order: A..Z, then AA..ZZ, then AAA..ZZZ. It returns ErrHeaderSpace when n
// exceeds the 18278 labels that scheme can produce, and nil when n <= 0.
func UniqueHeaders(n int) ([]string, error) {
	if n > maxUniqueHeaders {
		return nil, ErrHeaderSpace
	}
	if n <= 0 {
		return nil, nil
	}
	labels := make([]string, 0, n)
	for i := 0; i < len(headerLetters) && len(labels) < n; i++ {
		labels = append(labels, string(headerLetters[i]))
	}
	for i := 0; i < len(headerLetters) && len(labels) < n; i++ {
		for j := 0; j < len(headerLetters) && len(labels) < n; j++ {
			labels = append(labels, string([]byte{headerLetters[i], headerLetters[j]}))
		}
	}
	for i := 0; i < len(headerLetters) && len(labels) < n; i++ {
		for j := 0; j < len(headerLetters) && len(labels) < n; j++ {
			for k := 0; k < len(headerLetters) && len(labels) < n; k++ {
				labels = append(labels, string([]byte{headerLetters[i], headerLetters[j], headerLetters[k]}))
			}
		}
	}
	return labels, nil
}
