package codegen

import "github.com/coolc-lang/coolc/internal/class"

// emitBuiltinRuntime writes the hand-written method bodies for Object,
// String, Int, IO (spec.md §4.5 "Built-in runtime"), the fatal
// trampolines, the String/Int boxing helpers, and the process entry
// point `main`. Bool has no extra methods beyond what it inherits.
//
// The runtime uses only the host libc functions spec.md §5 names:
// malloc, memcpy, strlen, strcpy, strcat, memset, atol, sprintf,
// getline, fputs, perror, exit.
func (e *Emitter) emitBuiltinRuntime(mainClassName string) {
	object := e.table.Lookup(class.Object)
	copySlot := object.MethodSlot["copy"]
	initSlot := object.MethodSlot[class.InitMethod]
	main := e.table.Lookup(mainClassName)
	mainSlot := main.MethodSlot["main"]

	e.writeLine("Object.copy:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  mov (%%rbx), %%rdi")
	e.writeLine("  call malloc")
	e.writeLine("  test %%rax, %%rax")
	e.writeLine("  jne .Lobject_copy_ok")
	e.writeLine("  lea oom_msg(%%rip), %%rdi")
	e.writeLine("  call perror")
	e.writeLine("  mov $-1, %%edi")
	e.writeLine("  call exit")
	e.writeLine(".Lobject_copy_ok:")
	e.writeLine("  mov %%rax, %%rdi")
	e.writeLine("  mov %%rbx, %%rsi")
	e.writeLine("  mov (%%rbx), %%rdx")
	e.writeLine("  call memcpy")
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	e.writeLine("Object.abort:")
	e.writeLine("  jmp _abort")
	e.out.WriteByte('\n')

	e.writeLine("Object.type_name:")
	e.writeLine("  mov 24(%%rbx), %%rax")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	e.writeLine("Object.__init__:")
	e.writeLine("  mov %%rbx, %%rax")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	// String.__new__(%rdi = char* data) -> boxed String in %rax.
	e.writeLine("String.__new__:")
	e.writeLine("  push %%rbx")
	e.writeLine("  push %%rdi")
	e.writeLine("  lea %s_prototype(%%rip), %%rbx", class.String)
	e.writeLine("  call *%s_method_table+%d(%%rip)", class.String, copySlot*8)
	e.writeLine("  pop %%rdi")
	e.writeLine("  mov %%rdi, %d(%%rax)", FirstFieldOffset)
	e.writeLine("  pop %%rbx")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	// Int.__new__(%rdi = int64 value) -> boxed Int in %rax.
	e.writeLine("Int.__new__:")
	e.writeLine("  push %%rbx")
	e.writeLine("  push %%rdi")
	e.writeLine("  lea %s_prototype(%%rip), %%rbx", class.Int)
	e.writeLine("  call *%s_method_table+%d(%%rip)", class.Int, copySlot*8)
	e.writeLine("  pop %%rdi")
	e.writeLine("  mov %%rdi, %d(%%rax)", FirstFieldOffset)
	e.writeLine("  pop %%rbx")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	e.emitStringMethods()
	e.emitIntMethods()
	e.emitIOMethods()
	e.emitFatalTrampolines()

	e.writeLine("main:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  push %%rbx")
	e.writeLine("  lea %s_prototype(%%rip), %%rbx", main.Name)
	e.writeLine("  call *%s_method_table+%d(%%rip)", main.Name, copySlot*8)
	e.writeLine("  mov %%rax, %%rbx")
	e.writeLine("  call *%s_method_table+%d(%%rip)", main.Name, initSlot*8)
	e.writeLine("  mov %%rax, %%rbx")
	e.writeLine("  call *%s_method_table+%d(%%rip)", main.Name, mainSlot*8)
	e.writeLine("  mov %d(%%rax), %%rdi", FirstFieldOffset)
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  call exit")
	e.out.WriteByte('\n')
}

func (e *Emitter) emitStringMethods() {
	e.writeLine("String.length:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  mov %d(%%rbx), %%rdi", FirstFieldOffset)
	e.writeLine("  call strlen")
	e.writeLine("  mov %%rax, %%rdi")
	e.writeLine("  call Int.__new__")
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	// concat(other:String): formal `other` lives at 16(%rbp).
	e.writeLine("String.concat:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  push %%r12")
	e.writeLine("  push %%r13")
	e.writeLine("  push %%r14")
	e.writeLine("  sub $8, %%rsp") // keep the call sites below 16-byte aligned
	e.writeLine("  mov %d(%%rbx), %%r12", FirstFieldOffset)
	e.writeLine("  mov 16(%%rbp), %%r13")
	e.writeLine("  mov %d(%%r13), %%r13", FirstFieldOffset)
	e.writeLine("  mov %%r12, %%rdi")
	e.writeLine("  call strlen")
	e.writeLine("  mov %%rax, %%r14")
	e.writeLine("  mov %%r13, %%rdi")
	e.writeLine("  call strlen")
	e.writeLine("  add %%r14, %%rax")
	e.writeLine("  add $1, %%rax")
	e.writeLine("  mov %%rax, %%rdi")
	e.writeLine("  call malloc")
	e.writeLine("  mov %%rax, %%r14")
	e.writeLine("  mov %%r12, %%rsi")
	e.writeLine("  mov %%r14, %%rdi")
	e.writeLine("  call strcpy")
	e.writeLine("  mov %%r13, %%rsi")
	e.writeLine("  mov %%r14, %%rdi")
	e.writeLine("  call strcat")
	e.writeLine("  mov %%r14, %%rdi")
	e.writeLine("  call String.__new__")
	e.writeLine("  add $8, %%rsp")
	e.writeLine("  pop %%r14")
	e.writeLine("  pop %%r13")
	e.writeLine("  pop %%r12")
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	// substr(begin:Int, end:Int): half-open [begin, end) (spec.md §9).
	// begin >= length or begin >= end returns the empty-string constant.
	e.writeLine("String.substr:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  push %%r12")
	e.writeLine("  push %%r13")
	e.writeLine("  push %%r14")
	e.writeLine("  push %%r15")
	e.writeLine("  mov %d(%%rbx), %%r12", FirstFieldOffset)
	e.writeLine("  mov 16(%%rbp), %%rax")
	e.writeLine("  mov %d(%%rax), %%r13", FirstFieldOffset)
	e.writeLine("  mov 24(%%rbp), %%rax")
	e.writeLine("  mov %d(%%rax), %%r14", FirstFieldOffset)
	e.writeLine("  mov %%r12, %%rdi")
	e.writeLine("  call strlen")
	e.writeLine("  cmp %%rax, %%r13")
	e.writeLine("  jge .Lsubstr_empty")
	e.writeLine("  cmp %%r14, %%r13")
	e.writeLine("  jge .Lsubstr_empty")
	e.writeLine("  mov %%r14, %%rax")
	e.writeLine("  sub %%r13, %%rax")
	e.writeLine("  mov %%rax, %%r14") // r14 = count
	e.writeLine("  lea 1(%%r14), %%rdi")
	e.writeLine("  call malloc")
	e.writeLine("  mov %%rax, %%r15")
	e.writeLine("  mov %%r15, %%rdi")
	e.writeLine("  mov $0, %%esi")
	e.writeLine("  lea 1(%%r14), %%rdx")
	e.writeLine("  call memset")
	e.writeLine("  lea (%%r12,%%r13,1), %%rsi")
	e.writeLine("  mov %%r15, %%rdi")
	e.writeLine("  mov %%r14, %%rdx")
	e.writeLine("  call memcpy")
	e.writeLine("  mov %%r15, %%rdi")
	e.writeLine("  call String.__new__")
	e.writeLine("  jmp .Lsubstr_done")
	e.writeLine(".Lsubstr_empty:")
	e.writeLine("  lea string_constant_0(%%rip), %%rax")
	e.writeLine(".Lsubstr_done:")
	e.writeLine("  pop %%r15")
	e.writeLine("  pop %%r14")
	e.writeLine("  pop %%r13")
	e.writeLine("  pop %%r12")
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	e.writeLine("String.to_int:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  mov %d(%%rbx), %%rdi", FirstFieldOffset)
	e.writeLine("  call atol")
	e.writeLine("  mov %%rax, %%rdi")
	e.writeLine("  call Int.__new__")
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')
}

func (e *Emitter) emitIntMethods() {
	e.writeLine("Int.to_string:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  push %%r12")
	e.writeLine("  sub $8, %%rsp") // keep the call sites below 16-byte aligned
	e.writeLine("  mov $32, %%rdi")
	e.writeLine("  call malloc")
	e.writeLine("  mov %%rax, %%r12")
	e.writeLine("  mov %d(%%rbx), %%rdx", FirstFieldOffset)
	e.writeLine("  mov %%r12, %%rdi")
	e.writeLine("  lea int_format(%%rip), %%rsi")
	e.writeLine("  mov $0, %%al")
	e.writeLine("  call sprintf")
	e.writeLine("  mov %%r12, %%rdi")
	e.writeLine("  call String.__new__")
	e.writeLine("  add $8, %%rsp")
	e.writeLine("  pop %%r12")
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')
}

func (e *Emitter) emitIOMethods() {
	// in_string(): getline() allocates its own buffer; a trailing
	// newline, if present, is trimmed.
	e.writeLine("IO.in_string:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  sub $16, %%rsp")
	e.writeLine("  movq $0, (%%rsp)")
	e.writeLine("  movq $0, 8(%%rsp)")
	e.writeLine("  mov %%rsp, %%rdi")
	e.writeLine("  lea 8(%%rsp), %%rsi")
	e.writeLine("  mov stdin(%%rip), %%rdx")
	e.writeLine("  call getline")
	e.writeLine("  mov (%%rsp), %%rdi")
	e.writeLine("  cmp $-1, %%rax")
	e.writeLine("  je .Lin_string_check_nil")
	e.writeLine("  cmp $0, %%rax")
	e.writeLine("  jle .Lin_string_done")
	e.writeLine("  lea -1(%%rdi,%%rax,1), %%rcx")
	e.writeLine("  movb (%%rcx), %%dl")
	e.writeLine("  cmp $10, %%dl")
	e.writeLine("  jne .Lin_string_done")
	e.writeLine("  movb $0, (%%rcx)")
	e.writeLine("  jmp .Lin_string_done")
	e.writeLine(".Lin_string_check_nil:")
	e.writeLine("  cmp $0, %%rdi")
	e.writeLine("  jne .Lin_string_done")
	e.writeLine("  mov $1, %%rdi")
	e.writeLine("  call malloc")
	e.writeLine("  movb $0, (%%rax)")
	e.writeLine("  mov %%rax, %%rdi")
	e.writeLine(".Lin_string_done:")
	e.writeLine("  call String.__new__")
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')

	// out_string(x:String): formal `x` lives at 16(%rbp); returns self.
	e.writeLine("IO.out_string:")
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  mov 16(%%rbp), %%rax")
	e.writeLine("  mov %d(%%rax), %%rdi", FirstFieldOffset)
	e.writeLine("  mov stdout(%%rip), %%rsi")
	e.writeLine("  call fputs")
	e.writeLine("  mov %%rbx, %%rax")
	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')
}

// emitFatalTrampolines writes the shared fatal-error path (spec.md §4.4
// "invoke on void, case on void, case with no matching branch... jump to
// the shared abort path"). _error writes a message to stderr via fputs;
// _abort performs the actual exit(-1).
func (e *Emitter) emitFatalTrampolines() {
	// _error/_abort are reached by jmp, not call, from arbitrary points in
	// a method body (spec.md §4.4); they never return, so each realigns
	// the stack for its own libc call rather than trusting the jump site.
	e.writeLine("_error:")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  mov stderr(%%rip), %%rsi")
	e.writeLine("  call fputs")
	e.writeLine("  jmp _abort")
	e.out.WriteByte('\n')

	e.writeLine("_abort:")
	e.writeLine("  andq $-16, %%rsp")
	e.writeLine("  mov $-1, %%edi")
	e.writeLine("  call exit")
	e.out.WriteByte('\n')

	e.writeLine("_invoke_on_void:")
	e.writeLine("  lea invoke_on_void_msg(%%rip), %%rdi")
	e.writeLine("  jmp _error")
	e.out.WriteByte('\n')

	e.writeLine("_case_on_void:")
	e.writeLine("  lea case_on_void_msg(%%rip), %%rdi")
	e.writeLine("  jmp _error")
	e.out.WriteByte('\n')

	e.writeLine("_case_no_match:")
	e.writeLine("  lea case_no_match_msg(%%rip), %%rdi")
	e.writeLine("  jmp _error")
	e.out.WriteByte('\n')
}
