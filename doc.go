// Package statmeta provides the low-level decoding core for reading metadata
// out of statistical data files.
//
// It has two building blocks:
//
//   - A byte-source abstraction: every reader consumes its input through one
//     Source contract (open, close, seek, read, progress), backed by a memory
//     buffer, an OS file, or a read-only memory mapping.
//   - A multiple response set decoder for the descriptor strings SPSS system
//     files store in their MRSETS extension records.
//
// # Quick Start
//
// Decoding a descriptor blob:
//
//	sets, err := statmeta.ParseMRString("$mymrset=D1 1 24 My multiple response set bool1 bool2 bool3\n")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(sets[0].Label, sets[0].Subvariables)
//
// Reading a blob through a session:
//
//	s := statmeta.NewSession(statmeta.NewMapped(),
//	    statmeta.WithProgressHandler(func(p float64) bool {
//	        fmt.Printf("\r%3.0f%%", p*100)
//	        return false
//	    }),
//	)
//	defer s.Release()
//
//	if err := s.Open("survey.mrsets"); err != nil {
//		log.Fatal(err)
//	}
//	blob, err := s.ReadAll()
//	if err != nil {
//		log.Fatal(err)
//	}
//	sets, err := s.DecodeMR(blob)
//
// # Sources
//
// Seeks are absolute, relative to the cursor, or relative to the end. A
// seek that would land before the start fails with a *SeekRangeError and
// leaves the cursor where it was; a seek past the end is allowed, and reads
// from there return (0, nil). End of data is never an error.
//
// Backends can be chosen by name with WithBackend: "buffer", "file" and
// "mmap". Any other type implementing Source can be bound with NewSession.
//
// # Error Handling
//
// Errors are typed and wrap a sentinel, so callers use errors.Is and
// errors.As:
//
//	sets, err := statmeta.ReadMRSets(path)
//	var bad *statmeta.MalformedMRError
//	switch {
//	case errors.As(err, &bad):
//		log.Printf("record %d is malformed at byte %d", bad.Record, bad.Offset)
//	case errors.Is(err, statmeta.ErrUserAbort):
//		log.Print("cancelled")
//	}
//
// A malformed blob never yields partial results. With WithLenientMR the
// session records a Warning instead of failing.
//
// # Concurrency
//
// A Session belongs to one goroutine. ReadMRSetsMany decodes independent
// files in parallel, one session per file.
package statmeta
