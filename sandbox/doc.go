// Package sandbox is an in-memory stand-in for the payment service. It
// speaks the same envelope as the real API (invoices, bills, deliveries and
// rates) so the client and the paykit command can be exercised without
// network access or a merchant account.
//
//	srv, err := sandbox.NewServer(sandbox.Config{Port: 8089}, log)
//	if err != nil {
//	    return err
//	}
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//	defer srv.Stop(context.Background())
//
// Failures follow the three error shapes of the service: {"error": msg} for
// missing objects and bad bodies, {"errors": [...]} for invalid fields and
// {"status": "error", "code": ..., "message": ...} for rejected tokens.
package sandbox
