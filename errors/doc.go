// Package errors provides the failure taxonomy of the payment client.
//
// Low-level failures are first normalized into a base AppError whose Kind is
// one of TRANSPORT_FAILURE, MALFORMED_RESPONSE, SERVICE_ERROR or
// SERIALIZATION_FAILURE. When the error leaves a public client operation it is
// re-wrapped once by Scope into the operation class (CONNECTION_ERROR,
// CREATION_ERROR, QUERY_ERROR, DELIVERY_ERROR), keeping the upstream code and
// message.
//
//	inv, err := client.CreateInvoice(ctx, inv)
//	if e, ok := errors.AsAppError(err); ok {
//	    switch e.Op {
//	    case errors.OpCreation:
//	        log.Printf("create failed (%s): %s", e.Code, e.Message)
//	    }
//	}
package errors
